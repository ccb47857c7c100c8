package instagram

import (
	"sort"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"

	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
)

const botUsername = "shopbot.ir"

func parseFixture(t *testing.T, content string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return root
}

func testExtractor() *Extractor {
	e := NewExtractor(botUsername, DefaultSelectors())
	e.now = func() time.Time { return time.UnixMilli(5_000_000) }
	return e
}

func TestExtractUsernameFromHeaderLink(t *testing.T) {
	root := parseFixture(t, `<html><body>
		<header>
			<a href="/"></a>
			<a href="/shopbot.ir/">bot profile</a>
			<a href="/direct/inbox/">back</a>
			<a href="/sara.ahmadi/?igsh=abc">Sara</a>
		</header>
	</body></html>`)

	conv := testExtractor().Extract(root, "hint.user", 1)
	if conv.Username != "sara.ahmadi" {
		t.Errorf("username = %q, want sara.ahmadi (own account and nav links skipped)", conv.Username)
	}
}

func TestExtractUsernameFallbacks(t *testing.T) {
	root := parseFixture(t, `<html><body><header><a href="/"></a></header></body></html>`)

	conv := testExtractor().Extract(root, "mehdi_reza", 4)
	if conv.Username != "mehdi_reza" {
		t.Errorf("username = %q, want the caller hint", conv.Username)
	}

	conv = testExtractor().Extract(root, "  ", 4)
	if conv.Username != "user_4" {
		t.Errorf("username = %q, want synthesized placeholder", conv.Username)
	}
}

func TestExtractMessages(t *testing.T) {
	root := parseFixture(t, `<html><body>
		<div role="row"><div data-scope="message-received">سلام، خمیر دندان دارید؟<time datetime="2026-08-30T10:00:00Z">10:00</time></div></div>
		<div role="row"><div data-scope="message-sent">سلام! بله موجوده<time datetime="2026-08-30T10:01:00Z">10:01</time></div></div>
		<div role="row"><div>   </div></div>
	</body></html>`)

	conv := testExtractor().Extract(root, "sara", 1)
	if len(conv.Messages) != 2 {
		t.Fatalf("got %d messages, want 2 (blank row skipped)", len(conv.Messages))
	}
	if conv.Messages[0].Role != entity.RoleUser {
		t.Errorf("first role = %s, want user", conv.Messages[0].Role)
	}
	if conv.Messages[1].Role != entity.RoleAssistant {
		t.Errorf("second role = %s, want assistant", conv.Messages[1].Role)
	}
	if conv.Messages[0].Text != "سلام، خمیر دندان دارید؟" {
		t.Errorf("text = %q (time element text must not leak in)", conv.Messages[0].Text)
	}
	want := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC).UnixMilli()
	if conv.Messages[0].TimestampMs != want {
		t.Errorf("timestamp = %d, want %d", conv.Messages[0].TimestampMs, want)
	}
}

func TestExtractMissingMarkerDefaultsToUser(t *testing.T) {
	root := parseFixture(t, `<html><body>
		<div role="row"><div>پیام بدون مارکر</div></div>
	</body></html>`)

	conv := testExtractor().Extract(root, "sara", 1)
	if len(conv.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(conv.Messages))
	}
	if conv.Messages[0].Role != entity.RoleUser {
		t.Errorf("unmarked message attributed to %s, must be user", conv.Messages[0].Role)
	}
}

func TestExtractSkipsOversizedRows(t *testing.T) {
	root := parseFixture(t, `<html><body>
		<div role="row"><div data-scope="message-received">`+strings.Repeat("ن", 1200)+`</div></div>
		<div role="row"><div data-scope="message-received">پیام عادی</div></div>
	</body></html>`)

	conv := testExtractor().Extract(root, "sara", 1)
	if len(conv.Messages) != 1 || conv.Messages[0].Text != "پیام عادی" {
		t.Fatalf("oversized chrome row not skipped: %+v", conv.Messages)
	}
}

func TestExtractSynthesizesMissingTimestamp(t *testing.T) {
	root := parseFixture(t, `<html><body>
		<div role="row"><div data-scope="message-received">بدون زمان</div></div>
	</body></html>`)

	conv := testExtractor().Extract(root, "sara", 1)
	if conv.Messages[0].TimestampMs != 5_000_000 {
		t.Errorf("timestamp = %d, want synthesized now", conv.Messages[0].TimestampMs)
	}
}

func TestExtractSortsMessagesAscending(t *testing.T) {
	// DOM order deliberately does not match chronology.
	root := parseFixture(t, `<html><body>
		<div role="row"><div data-scope="message-sent">سوم<time datetime="2026-08-30T12:00:00Z"></time></div></div>
		<div role="row"><div data-scope="message-received">اول<time datetime="2026-08-30T09:00:00Z"></time></div></div>
		<div role="row"><div data-scope="message-received">دوم<time datetime="2026-08-30T10:30:00Z"></time></div></div>
	</body></html>`)

	conv := testExtractor().Extract(root, "sara", 1)
	if len(conv.Messages) != 3 {
		t.Fatalf("got %d messages", len(conv.Messages))
	}
	if !sort.SliceIsSorted(conv.Messages, func(i, j int) bool {
		return conv.Messages[i].TimestampMs < conv.Messages[j].TimestampMs
	}) {
		t.Errorf("messages not sorted ascending: %+v", conv.Messages)
	}
	if conv.Messages[0].Text != "اول" || conv.Messages[2].Text != "سوم" {
		t.Errorf("unexpected order: %q, %q, %q", conv.Messages[0].Text, conv.Messages[1].Text, conv.Messages[2].Text)
	}
}
