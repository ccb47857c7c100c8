// Package browser implements the browsing session over a headless Chromium
// driven by Playwright. Only this package knows about the driver; everything
// above it sees the repository.BrowserSession interface.
package browser

import (
	"context"
	"fmt"
	"strings"

	pw "github.com/playwright-community/playwright-go"
	"golang.org/x/net/html"

	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
	"github.com/yourusername/instagram-ai-bot/internal/domain/repository"
)

const (
	instagramBaseURL = "https://www.instagram.com"
	inboxURL         = instagramBaseURL + "/direct/inbox/"
	threadPathPrefix = "/direct/t/"

	// messageBoxSelector is the DM composer. Tracked against current markup;
	// updating it is routine maintenance, not a design change.
	messageBoxSelector = `div[role="textbox"]`
)

// Options configures the session.
type Options struct {
	// SessionID is the value of the Instagram "sessionid" cookie of the
	// logged-in bot account.
	SessionID string
	Headless  bool
}

type playwrightSession struct {
	runner  *pw.Playwright
	browser pw.Browser
	page    pw.Page
}

// NewSession launches the browser, injects the session cookie and opens the
// single page everything else runs against.
func NewSession(opts Options) (repository.BrowserSession, error) {
	runner, err := pw.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	browser, err := runner.Chromium.Launch(pw.BrowserTypeLaunchOptions{
		Headless: pw.Bool(opts.Headless),
	})
	if err != nil {
		runner.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	browserCtx, err := browser.NewContext()
	if err != nil {
		browser.Close()
		runner.Stop()
		return nil, fmt.Errorf("create browser context: %w", err)
	}

	err = browserCtx.AddCookies([]pw.OptionalCookie{{
		Name:   "sessionid",
		Value:  opts.SessionID,
		Domain: pw.String(".instagram.com"),
		Path:   pw.String("/"),
	}})
	if err != nil {
		browser.Close()
		runner.Stop()
		return nil, fmt.Errorf("inject session cookie: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		browser.Close()
		runner.Stop()
		return nil, fmt.Errorf("open page: %w", err)
	}

	return &playwrightSession{runner: runner, browser: browser, page: page}, nil
}

// InboxThreads opens the DM inbox and collects thread links.
func (s *playwrightSession) InboxThreads(ctx context.Context) ([]entity.Thread, error) {
	if err := s.Navigate(ctx, inboxURL); err != nil {
		return nil, err
	}
	content, err := s.Content(ctx)
	if err != nil {
		return nil, err
	}
	return threadsFromInboxHTML(content)
}

// threadsFromInboxHTML walks the rendered inbox for thread links. The link's
// visible text is kept as a username hint for the extractor.
func threadsFromInboxHTML(content string) ([]entity.Thread, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse inbox html: %w", err)
	}

	var threads []entity.Thread
	seen := make(map[string]bool)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" || !strings.HasPrefix(attr.Val, threadPathPrefix) {
					continue
				}
				url := instagramBaseURL + attr.Val
				if !seen[url] {
					seen[url] = true
					threads = append(threads, entity.Thread{
						URL:          url,
						UsernameHint: strings.TrimSpace(nodeText(n)),
					})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return threads, nil
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

func (s *playwrightSession) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.page.Goto(url, pw.PageGotoOptions{
		WaitUntil: pw.WaitUntilStateNetworkidle,
		Timeout:   pw.Float(30000),
	})
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (s *playwrightSession) Content(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content, err := s.page.Content()
	if err != nil {
		return "", fmt.Errorf("read page content: %w", err)
	}
	return content, nil
}

func (s *playwrightSession) SendMessage(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.page.Fill(messageBoxSelector, text); err != nil {
		return fmt.Errorf("fill message box: %w", err)
	}
	if err := s.page.Keyboard().Press("Enter"); err != nil {
		return fmt.Errorf("submit message: %w", err)
	}
	return nil
}

func (s *playwrightSession) Close() error {
	var firstErr error
	if err := s.browser.Close(); err != nil {
		firstErr = err
	}
	if err := s.runner.Stop(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
