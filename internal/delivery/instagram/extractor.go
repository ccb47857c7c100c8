// Package instagram turns rendered conversation views into structured
// conversation state and drives the inbox-wide sync. The extractor works on a
// parsed HTML tree, never a live page, so it is testable against fixtures and
// survives driver swaps.
package instagram

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/yourusername/instagram-ai-bot/internal/domain/constants"
	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
)

// Selectors names the markup hooks the extractor relies on. They track the
// current DM markup and are swapped out here, in one place, when it changes.
type Selectors struct {
	// MessageRowRole is the role attribute value marking a message row.
	MessageRowRole string
	// SenderAttr is the bubble attribute carrying the sender marker.
	SenderAttr string
	// SenderOwnValue marks the bot's own (outgoing) messages.
	SenderOwnValue string
	// SenderOtherValue marks the counterparty's (incoming) messages.
	SenderOtherValue string
}

// DefaultSelectors returns the hooks for the current DM markup.
func DefaultSelectors() Selectors {
	return Selectors{
		MessageRowRole:   "row",
		SenderAttr:       "data-scope",
		SenderOwnValue:   "message-sent",
		SenderOtherValue: "message-received",
	}
}

// Conversation is the extractor's output for one thread.
type Conversation struct {
	Username string
	Messages []entity.Message
}

// Extractor maps one rendered conversation view to a Conversation.
type Extractor struct {
	botUsername string
	selectors   Selectors
	now         func() time.Time
}

// NewExtractor creates an extractor that never attributes unmarked messages
// to botUsername's side.
func NewExtractor(botUsername string, selectors Selectors) *Extractor {
	return &Extractor{
		botUsername: strings.ToLower(botUsername),
		selectors:   selectors,
		now:         time.Now,
	}
}

// Extract walks the rendered view. hintUsername is what the inbox list showed
// for this thread; position disambiguates the synthesized placeholder when
// neither the view nor the hint yields a username.
//
// Messages come back sorted ascending by timestamp: the view interleaves UI
// elements in DOM order that does not always match chronology.
func (e *Extractor) Extract(root *html.Node, hintUsername string, position int) Conversation {
	username := e.resolveUsername(root)
	if username == "" {
		username = strings.TrimSpace(hintUsername)
	}
	if username == "" {
		username = fmt.Sprintf("user_%d", position)
	}

	messages := e.extractMessages(root)
	entity.SortMessages(messages)

	return Conversation{Username: username, Messages: messages}
}

// resolveUsername scans header-area links for the first profile href that is
// neither the bot's own account nor the root path.
func (e *Extractor) resolveUsername(root *html.Node) string {
	var username string
	var walkHeader func(n *html.Node, inHeader bool)
	walkHeader = func(n *html.Node, inHeader bool) {
		if username != "" {
			return
		}
		if n.Type == html.ElementNode {
			if n.Data == "header" {
				inHeader = true
			}
			if inHeader && n.Data == "a" {
				if candidate := e.usernameFromHref(attrValue(n, "href")); candidate != "" {
					username = candidate
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walkHeader(c, inHeader)
		}
	}
	walkHeader(root, false)
	return username
}

func (e *Extractor) usernameFromHref(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || href == "/" {
		return ""
	}
	if idx := strings.Index(href, "?"); idx >= 0 {
		href = href[:idx]
	}
	href = strings.TrimPrefix(href, "https://www.instagram.com")
	segments := strings.Split(strings.Trim(href, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return ""
	}
	first := segments[0]
	switch first {
	case "direct", "explore", "reels", "stories", "accounts", "p":
		return ""
	}
	if strings.EqualFold(first, e.botUsername) {
		return ""
	}
	return first
}

// extractMessages iterates row elements, skipping UI chrome: rows with no
// text (date separators, seen indicators) and rows past the sanity length
// bound (system notices, embedded shares).
func (e *Extractor) extractMessages(root *html.Node) []entity.Message {
	var messages []entity.Message
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && attrValue(n, "role") == e.selectors.MessageRowRole {
			if msg, ok := e.messageFromRow(n); ok {
				messages = append(messages, msg)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return messages
}

func (e *Extractor) messageFromRow(row *html.Node) (entity.Message, bool) {
	text := strings.TrimSpace(collectText(row))
	if text == "" || len([]rune(text)) > constants.MaxMessageLength {
		return entity.Message{}, false
	}

	return entity.Message{
		ID:          uuid.New().String(),
		Role:        e.resolveRole(row),
		Text:        text,
		TimestampMs: e.resolveTimestamp(row),
	}, true
}

// resolveRole reads the sender marker. A missing or unknown marker attributes
// the message to the counterparty, never to the bot.
func (e *Extractor) resolveRole(row *html.Node) entity.Role {
	marker := findAttrValue(row, e.selectors.SenderAttr)
	if marker == e.selectors.SenderOwnValue {
		return entity.RoleAssistant
	}
	return entity.RoleUser
}

// resolveTimestamp reads the row's machine-readable time when present and
// synthesizes the current instant otherwise. Synthesized timestamps are a
// precision loss, not an error.
func (e *Extractor) resolveTimestamp(row *html.Node) int64 {
	if raw := findTimeDatetime(row); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			return ts.UnixMilli()
		}
	}
	return e.now().UnixMilli()
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// findAttrValue returns the first non-empty value of key in n's subtree.
func findAttrValue(n *html.Node, key string) string {
	if n.Type == html.ElementNode {
		if v := attrValue(n, key); v != "" {
			return v
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if v := findAttrValue(c, key); v != "" {
			return v
		}
	}
	return ""
}

// findTimeDatetime returns the datetime attribute of the first time element
// in n's subtree.
func findTimeDatetime(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "time" {
		if v := attrValue(n, "datetime"); v != "" {
			return v
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if v := findTimeDatetime(c); v != "" {
			return v
		}
	}
	return ""
}

func collectText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type == html.ElementNode && n.Data == "time" {
		// Visible clock text is chrome, not message content.
		return ""
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(collectText(c))
	}
	return b.String()
}
