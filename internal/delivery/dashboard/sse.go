package dashboard

import (
	"net/http"
	"sync"
)

// LogHub fans log lines out to connected dashboard clients. It keeps a
// bounded ring of recent lines replayed to every new subscriber. The hub is
// injected where it is needed; nothing holds it as a package-level singleton.
type LogHub struct {
	mu      sync.Mutex
	ring    []string
	next    int
	full    bool
	clients map[chan string]struct{}
}

// NewLogHub creates a hub whose replay buffer holds capacity lines.
func NewLogHub(capacity int) *LogHub {
	if capacity <= 0 {
		capacity = 1
	}
	return &LogHub{
		ring:    make([]string, capacity),
		clients: make(map[chan string]struct{}),
	}
}

// Log implements logger.Sink. Slow clients are skipped, never waited on.
func (h *LogHub) Log(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.ring[h.next] = line
	h.next = (h.next + 1) % len(h.ring)
	if h.next == 0 {
		h.full = true
	}

	for ch := range h.clients {
		select {
		case ch <- line:
		default:
		}
	}
}

// Subscribe registers a client and returns its channel, the buffered replay
// lines, and the matching unsubscribe.
func (h *LogHub) Subscribe() (<-chan string, []string, func()) {
	ch := make(chan string, 64)

	h.mu.Lock()
	replay := h.snapshotLocked()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		delete(h.clients, ch)
		h.mu.Unlock()
	}
	return ch, replay, unsubscribe
}

func (h *LogHub) snapshotLocked() []string {
	var out []string
	if h.full {
		out = append(out, h.ring[h.next:]...)
	}
	out = append(out, h.ring[:h.next]...)
	return out
}

// handleLogStream serves the hub over SSE, replaying the ring first.
func (s *Server) handleLogStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, replay, unsubscribe := s.logs.Subscribe()
	defer unsubscribe()

	for _, line := range replay {
		writeSSE(w, line)
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case line := <-ch:
			writeSSE(w, line)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, line string) {
	// One event per log line; strip the trailing newline log.Logger adds.
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	w.Write([]byte("data: " + line + "\n\n"))
}
