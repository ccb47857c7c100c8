package instagram

import (
	"context"
	"log"
	"time"

	"github.com/yourusername/instagram-ai-bot/internal/domain/repository"
	"github.com/yourusername/instagram-ai-bot/internal/usecase"
)

// Bot ties the syncer, responder and context persistence into the periodic
// run loop.
type Bot struct {
	syncer    *Syncer
	responder *Responder
	contexts  repository.ContextRepository
	status    *usecase.StatusUseCase
	interval  time.Duration
}

// NewBot creates the run loop.
func NewBot(syncer *Syncer, responder *Responder, contexts repository.ContextRepository, status *usecase.StatusUseCase, interval time.Duration) *Bot {
	return &Bot{
		syncer:    syncer,
		responder: responder,
		contexts:  contexts,
		status:    status,
		interval:  interval,
	}
}

// RunOnce executes one sync pass followed by replies, persisting the store
// only after the full pass completed.
func (b *Bot) RunOnce(ctx context.Context) error {
	prior, err := b.contexts.LoadAll(ctx)
	if err != nil {
		return err
	}

	report, store, synced, err := b.syncer.Run(ctx, prior)
	if err != nil {
		b.status.RecordError(err)
		return err
	}

	if err := b.contexts.SaveAll(ctx, store); err != nil {
		b.status.RecordError(err)
		return err
	}

	sent := b.responder.Respond(ctx, store, synced)
	b.status.RecordRun(report, sent)
	return nil
}

// Start runs sync passes on the configured interval until ctx is cancelled.
// A failed pass is logged and the loop keeps going; the previous persisted
// store stays untouched.
func (b *Bot) Start(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	b.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Printf("bot: sync loop stopped")
			return
		case <-ticker.C:
			b.tick(ctx)
		}
	}
}

func (b *Bot) tick(ctx context.Context) {
	if b.status.IsPaused() {
		log.Printf("bot: paused, skipping sync pass")
		return
	}
	if err := b.RunOnce(ctx); err != nil && ctx.Err() == nil {
		log.Printf("bot: sync pass failed: %v", err)
	}
}
