package repository

import (
	"context"

	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
)

// BrowserSession abstracts the single logged-in browsing session the bot
// drives. The page is one shared stateful resource: callers sequence their
// calls, implementations do not need to be safe for concurrent use.
type BrowserSession interface {
	// InboxThreads enumerates the direct-message inbox.
	InboxThreads(ctx context.Context) ([]entity.Thread, error)

	// Navigate opens the given URL in the session's page.
	Navigate(ctx context.Context, url string) error

	// Content returns the page's rendered HTML after client-side scripts ran.
	Content(ctx context.Context) (string, error)

	// SendMessage types and submits a reply in the currently open thread.
	SendMessage(ctx context.Context, text string) error

	Close() error
}
