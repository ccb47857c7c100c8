package instagram

import (
	"context"
	"log"

	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
	"github.com/yourusername/instagram-ai-bot/internal/domain/repository"
	"github.com/yourusername/instagram-ai-bot/internal/usecase"
)

// Responder answers threads whose newest message came from the user. Like the
// syncer it runs strictly sequentially over the shared page.
type Responder struct {
	session repository.BrowserSession
	replies usecase.ReplyUseCase
}

// NewResponder creates the responder.
func NewResponder(session repository.BrowserSession, replies usecase.ReplyUseCase) *Responder {
	return &Responder{session: session, replies: replies}
}

// Respond walks the threads synced in this run and replies where the user
// spoke last. A failing thread is logged and skipped, same policy as sync.
// Returns how many replies were sent.
func (r *Responder) Respond(ctx context.Context, store entity.ContextStore, synced []SyncedThread) int {
	sent := 0
	for _, st := range synced {
		if err := ctx.Err(); err != nil {
			return sent
		}

		userCtx, ok := store[st.Username]
		if !ok || len(userCtx.Messages) == 0 {
			continue
		}
		last := userCtx.Messages[len(userCtx.Messages)-1]
		if last.Role != entity.RoleUser {
			continue
		}

		reply, err := r.replies.BuildReply(ctx, userCtx, last.Text)
		if err != nil {
			log.Printf("respond: building reply for %s: %v", st.Username, err)
			continue
		}
		if err := r.session.Navigate(ctx, st.Thread.URL); err != nil {
			log.Printf("respond: opening thread for %s: %v", st.Username, err)
			continue
		}
		if err := r.session.SendMessage(ctx, reply); err != nil {
			log.Printf("respond: sending to %s: %v", st.Username, err)
			continue
		}
		sent++
	}
	return sent
}
