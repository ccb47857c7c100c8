package browser

import "testing"

func TestThreadsFromInboxHTML(t *testing.T) {
	content := `<html><body>
		<div role="listbox">
			<a href="/direct/t/100"><span>sara.ahmadi</span></a>
			<a href="/direct/t/200"><span>mehdi_reza</span></a>
			<a href="/direct/t/100"><span>sara.ahmadi</span></a>
			<a href="/explore/">explore</a>
		</div>
	</body></html>`

	threads, err := threadsFromInboxHTML(content)
	if err != nil {
		t.Fatalf("threadsFromInboxHTML: %v", err)
	}
	if len(threads) != 2 {
		t.Fatalf("got %d threads, want 2 (duplicates and non-thread links dropped)", len(threads))
	}
	if threads[0].URL != "https://www.instagram.com/direct/t/100" {
		t.Errorf("thread URL = %q", threads[0].URL)
	}
	if threads[0].UsernameHint != "sara.ahmadi" {
		t.Errorf("username hint = %q", threads[0].UsernameHint)
	}
}

func TestThreadsFromInboxHTMLEmpty(t *testing.T) {
	threads, err := threadsFromInboxHTML("<html><body></body></html>")
	if err != nil {
		t.Fatalf("threadsFromInboxHTML: %v", err)
	}
	if len(threads) != 0 {
		t.Errorf("expected no threads, got %d", len(threads))
	}
}
