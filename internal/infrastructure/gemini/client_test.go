package gemini

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func responseWithText(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(text)}}},
		},
	}
}

func TestDraftFromResponse(t *testing.T) {
	draft, err := draftFromResponse(responseWithText(`{"message": "سلام! بله موجوده", "include_link": true}`))
	if err != nil {
		t.Fatalf("draftFromResponse: %v", err)
	}
	if draft.Message != "سلام! بله موجوده" || !draft.IncludeLink {
		t.Errorf("unexpected draft: %+v", draft)
	}
}

func TestDraftFromResponseStripsCodeFence(t *testing.T) {
	raw := "```json\n{\"message\": \"باشه\", \"include_link\": false}\n```"
	draft, err := draftFromResponse(responseWithText(raw))
	if err != nil {
		t.Fatalf("draftFromResponse: %v", err)
	}
	if draft.Message != "باشه" || draft.IncludeLink {
		t.Errorf("unexpected draft: %+v", draft)
	}
}

func TestDraftFromResponseRejectsEmpty(t *testing.T) {
	if _, err := draftFromResponse(responseWithText("")); err == nil {
		t.Error("expected error for empty response")
	}
	if _, err := draftFromResponse(responseWithText(`{"message": "", "include_link": false}`)); err == nil {
		t.Error("expected error for empty message field")
	}
}
