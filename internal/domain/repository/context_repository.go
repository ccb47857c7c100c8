package repository

import (
	"context"

	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
)

// ContextRepository persists the sync run's terminal artifact. SaveAll writes
// the whole store in one shot: a crashed run must never corrupt or partially
// overwrite the previous good store.
type ContextRepository interface {
	SaveAll(ctx context.Context, store entity.ContextStore) error

	// LoadAll returns the last persisted store, or an empty store when none
	// has been written yet.
	LoadAll(ctx context.Context) (entity.ContextStore, error)
}
