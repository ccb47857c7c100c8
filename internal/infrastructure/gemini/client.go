package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/yourusername/instagram-ai-bot/internal/domain/constants"
	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
	"github.com/yourusername/instagram-ai-bot/internal/domain/repository"
)

type geminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient creates the Gemini-backed AI repository.
func NewGeminiClient(apiKey string) (repository.AIRepository, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(constants.GeminiModelName)
	model.SetTemperature(constants.AITemperature)
	model.SetTopK(constants.AITopK)
	model.SetTopP(constants.AITopP)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(SystemInstruction)},
	}

	return &geminiClient{client: client, model: model}, nil
}

// GenerateReply asks the model for a structured reply draft, retrying
// transient failures per the retry constants.
func (g *geminiClient) GenerateReply(ctx context.Context, username, message, productContext string, history []entity.Message) (*repository.ReplyDraft, error) {
	var prompt strings.Builder
	prompt.WriteString("نام کاربر: " + username + "\n\n")
	if productContext != "" {
		prompt.WriteString("محصولات مرتبط:\n" + productContext + "\n\n")
	}
	if len(history) > 0 {
		prompt.WriteString("تاریخچه گفتگو:\n")
		for _, msg := range history {
			switch msg.Role {
			case entity.RoleAssistant:
				prompt.WriteString("تو: " + msg.Text + "\n")
			default:
				prompt.WriteString("کاربر: " + msg.Text + "\n")
			}
		}
		prompt.WriteString("\n")
	}
	prompt.WriteString("پیام جدید کاربر: " + message)

	parts := []genai.Part{genai.Text(prompt.String())}

	var lastErr error
	for attempt := 1; attempt <= constants.MaxRetries; attempt++ {
		resp, err := g.model.GenerateContent(ctx, parts...)
		if err == nil {
			if draft, parseErr := draftFromResponse(resp); parseErr == nil {
				return draft, nil
			} else {
				err = parseErr
			}
		}

		lastErr = err
		log.Printf("gemini: attempt %d/%d failed: %v", attempt, constants.MaxRetries, err)
		if attempt < constants.MaxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(constants.RetryDelaySeconds * time.Second):
			}
		}
	}
	return nil, fmt.Errorf("gemini request failed after %d attempts: %w", constants.MaxRetries, lastErr)
}

func draftFromResponse(resp *genai.GenerateContentResponse) (*repository.ReplyDraft, error) {
	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty response")
	}

	var draft repository.ReplyDraft
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &draft); err != nil {
		return nil, fmt.Errorf("decode reply draft: %w (raw: %.120s)", err, text)
	}
	if strings.TrimSpace(draft.Message) == "" {
		return nil, fmt.Errorf("reply draft has empty message")
	}
	return &draft, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}

// stripCodeFence removes a ```json ... ``` wrapper the model sometimes adds
// despite the JSON MIME type.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
