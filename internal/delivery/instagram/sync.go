package instagram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
	"github.com/yourusername/instagram-ai-bot/internal/domain/repository"
)

// defaultTone seeds the tone field of a freshly synced context; the reply
// layer may refine it later from the conversation.
const defaultTone = "صمیمی"

// errNotSettled marks a thread view that rendered without any message rows
// yet; the settle policy retries it and the last attempt's result is accepted.
var errNotSettled = errors.New("thread view not settled")

// SyncedThread pairs a synced thread with the username its view resolved to.
type SyncedThread struct {
	Thread   entity.Thread
	Username string
}

// Syncer walks every inbox thread sequentially and produces the consolidated
// context store. The browsing session is one shared page, so there is exactly
// one logical worker; no locking is needed on the in-progress store.
type Syncer struct {
	session   repository.BrowserSession
	extractor *Extractor
	settle    RetryPolicy
	now       func() time.Time
}

// NewSyncer creates the orchestrator.
func NewSyncer(session repository.BrowserSession, extractor *Extractor, settle RetryPolicy) *Syncer {
	return &Syncer{
		session:   session,
		extractor: extractor,
		settle:    settle,
		now:       time.Now,
	}
}

// Run executes one full sync pass. Each thread moves
// Pending -> Processing -> {Synced, Skipped}; a failing thread is skipped
// with its reason recorded and never aborts the run. prior is the last
// persisted store: synced threads replace their entries wholesale, while
// entries for threads that failed this run are carried over unchanged.
//
// Run only assembles the store; persisting it after the full pass is the
// caller's job, so an aborted run leaves the previous good store untouched.
func (s *Syncer) Run(ctx context.Context, prior entity.ContextStore) (entity.SyncReport, entity.ContextStore, []SyncedThread, error) {
	started := s.now()

	threads, err := s.session.InboxThreads(ctx)
	if err != nil {
		return entity.SyncReport{}, nil, nil, fmt.Errorf("enumerate inbox threads: %w", err)
	}
	if len(threads) == 0 {
		return entity.SyncReport{}, nil, nil, errors.New("no inbox threads discoverable")
	}

	store := entity.ContextStore{}
	for username, userCtx := range prior {
		store[username] = userCtx
	}

	var report entity.SyncReport
	var synced []SyncedThread

	for i, thread := range threads {
		// Cancellation is honored between thread iterations only; a thread
		// in flight finishes or fails on its own.
		if err := ctx.Err(); err != nil {
			return report, nil, nil, err
		}

		conv, err := s.syncThread(ctx, thread, i+1)
		if err != nil {
			report.Skipped++
			report.SkipReasons = append(report.SkipReasons, entity.SkipReason{
				Thread: threadLabel(thread),
				Reason: err.Error(),
			})
			log.Printf("sync: thread %s %s: %v", threadLabel(thread), entity.ThreadSkipped, err)
			continue
		}

		report.Processed++
		s.applyConversation(store, conv)
		synced = append(synced, SyncedThread{Thread: thread, Username: conv.Username})
		log.Printf("sync: thread %s %s (%d messages)", threadLabel(thread), entity.ThreadSynced, len(conv.Messages))
	}

	report.DurationMs = s.now().Sub(started).Milliseconds()
	log.Printf("sync: run complete, processed=%d skipped=%d", report.Processed, report.Skipped)
	return report, store, synced, nil
}

// syncThread opens one thread and extracts its conversation, retrying while
// the view has no message rows yet. The final attempt's empty result is
// accepted: an empty thread is a valid outcome.
func (s *Syncer) syncThread(ctx context.Context, thread entity.Thread, position int) (Conversation, error) {
	if err := s.session.Navigate(ctx, thread.URL); err != nil {
		return Conversation{}, fmt.Errorf("navigate: %w", err)
	}

	var conv Conversation
	err := s.settle.Do(ctx, func() error {
		content, err := s.session.Content(ctx)
		if err != nil {
			return fmt.Errorf("read thread view: %w", err)
		}
		root, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return fmt.Errorf("parse thread view: %w", err)
		}
		conv = s.extractor.Extract(root, thread.UsernameHint, position)
		if len(conv.Messages) == 0 {
			return errNotSettled
		}
		return nil
	})
	if err != nil && !errors.Is(err, errNotSettled) {
		return Conversation{}, err
	}
	return conv, nil
}

// applyConversation replaces the user's entry last-write-wins, with one
// guard: an existing history is never replaced by an empty one, so a partial
// page load cannot wipe what an earlier run captured.
func (s *Syncer) applyConversation(store entity.ContextStore, conv Conversation) {
	if existing, ok := store[conv.Username]; ok && len(conv.Messages) == 0 && len(existing.Messages) > 0 {
		log.Printf("sync: keeping prior history for %s, new extraction was empty", conv.Username)
		return
	}

	nowMs := s.now().UnixMilli()
	firstSeen, lastSeen := nowMs, nowMs
	if len(conv.Messages) > 0 {
		firstSeen = conv.Messages[0].TimestampMs
		lastSeen = conv.Messages[len(conv.Messages)-1].TimestampMs
	}

	store[conv.Username] = &entity.UserContext{
		Username:    conv.Username,
		DisplayName: entity.DisplayNameFromUsername(conv.Username),
		Tone:        defaultTone,
		Messages:    conv.Messages,
		FirstSeenMs: firstSeen,
		LastSeenMs:  lastSeen,
	}
}

func threadLabel(thread entity.Thread) string {
	if thread.UsernameHint != "" {
		return thread.UsernameHint
	}
	return thread.URL
}
