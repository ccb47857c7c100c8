package repository

import (
	"context"

	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
)

// ReplyDraft is the structured output requested from the model: the reply
// text plus whether a product link should be appended.
type ReplyDraft struct {
	Message     string `json:"message"`
	IncludeLink bool   `json:"include_link"`
}

// AIRepository generates reply text for user messages. Implementations may
// fail transiently; callers retry or degrade, the implementation does not
// invent fallback text on its own.
type AIRepository interface {
	// GenerateReply produces a draft for the user's latest message given the
	// conversation history and a prompt block describing matched products.
	GenerateReply(ctx context.Context, username, message, productContext string, history []entity.Message) (*ReplyDraft, error)
}
