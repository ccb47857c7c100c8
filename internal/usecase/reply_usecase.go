package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
	"github.com/yourusername/instagram-ai-bot/internal/domain/repository"
)

// fallbackReply is sent when the model is unreachable after retries. A failed
// generation degrades, it never drops the user's message on the floor.
const fallbackReply = "مرسی از پیامت! الان نمی‌تونم دقیق جواب بدم، ولی می‌تونی محصولات رو توی سایت ببینی 🌸"

// ReplyUseCase turns a user message into reply text, resolving mentioned
// products against the catalog first.
type ReplyUseCase interface {
	BuildReply(ctx context.Context, userCtx *entity.UserContext, message string) (string, error)

	// SearchProducts exposes the catalog match directly, for the dashboard's
	// lookup endpoint.
	SearchProducts(ctx context.Context, query string) (entity.MatchResult, error)
}

type replyUseCase struct {
	aiRepo      repository.AIRepository
	productRepo repository.ProductRepository
}

// NewReplyUseCase creates the reply pipeline.
func NewReplyUseCase(aiRepo repository.AIRepository, productRepo repository.ProductRepository) ReplyUseCase {
	return &replyUseCase{aiRepo: aiRepo, productRepo: productRepo}
}

// BuildReply matches the message against the catalog, hands the candidates to
// the model, and appends the resolved link when the draft asks for one.
func (u *replyUseCase) BuildReply(ctx context.Context, userCtx *entity.UserContext, message string) (string, error) {
	match, err := u.productRepo.Search(ctx, message)
	if err != nil {
		return "", fmt.Errorf("search products: %w", err)
	}
	brand := entity.DetectBrand(message)

	draft, err := u.aiRepo.GenerateReply(ctx, userCtx.Username, message, buildProductContext(match, brand), userCtx.Messages)
	if err != nil {
		log.Printf("reply: generation failed for %s, using fallback: %v", userCtx.Username, err)
		return fallbackReply, nil
	}

	reply := strings.TrimSpace(draft.Message)
	if draft.IncludeLink && match.URL != "" {
		reply = reply + "\n" + match.URL
	}
	return reply, nil
}

func (u *replyUseCase) SearchProducts(ctx context.Context, query string) (entity.MatchResult, error) {
	return u.productRepo.Search(ctx, query)
}

// buildProductContext renders the match for the prompt. Fuzzy results are
// flagged so the model hedges its wording; the brand line lets the reply use
// brand vocabulary even when no specific product matched.
func buildProductContext(match entity.MatchResult, brand entity.Brand) string {
	var b strings.Builder

	switch match.Confidence {
	case entity.ConfidenceNone:
		b.WriteString("محصول مشخصی پیدا نشد.\n")
	case entity.ConfidenceFuzzy:
		b.WriteString("تطبیق حدسی است؛ با احتیاط جواب بده.\n")
	}

	for i, p := range match.Products {
		fmt.Fprintf(&b, "%d. %s | قیمت: %s | برند: %s\n", i+1, p.Name, p.Price, p.Brand.Label())
	}
	if brand != entity.BrandOther {
		fmt.Fprintf(&b, "برند اشاره‌شده در پیام: %s\n", brand.Label())
	}
	return strings.TrimSpace(b.String())
}
