package dashboard

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"github.com/yourusername/instagram-ai-bot/internal/domain/entity"
)

// conversationSummary is one row of the conversation listing.
type conversationSummary struct {
	Username      string `json:"username"`
	DisplayName   string `json:"display_name"`
	MessageCount  int    `json:"message_count"`
	LastMessage   string `json:"last_message,omitempty"`
	LastMessageMs int64  `json:"last_message_ms"`
}

// handleListConversations returns summaries sorted newest-first by last
// message time.
func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	store, err := s.contexts.LoadAll(r.Context())
	if err != nil {
		log.Printf("dashboard: loading contexts: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load conversations"})
		return
	}

	summaries := make([]conversationSummary, 0, len(store))
	for _, userCtx := range store {
		summary := conversationSummary{
			Username:      userCtx.Username,
			DisplayName:   userCtx.DisplayName,
			MessageCount:  len(userCtx.Messages),
			LastMessageMs: userCtx.LastMessageMs(),
		}
		if n := len(userCtx.Messages); n > 0 {
			summary.LastMessage = userCtx.Messages[n-1].Text
		}
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].LastMessageMs == summaries[j].LastMessageMs {
			return summaries[i].Username < summaries[j].Username
		}
		return summaries[i].LastMessageMs > summaries[j].LastMessageMs
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"conversations": summaries,
		"total":         len(summaries),
	})
}

// handleGetConversation returns one full context; messages are stored
// ascending by timestamp and served as-is.
func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	store, err := s.contexts.LoadAll(r.Context())
	if err != nil {
		log.Printf("dashboard: loading contexts: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load conversation"})
		return
	}

	userCtx, ok := store[username]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "conversation not found"})
		return
	}
	writeJSON(w, http.StatusOK, userCtx)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.status.Snapshot())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	store, err := s.contexts.LoadAll(r.Context())
	if err != nil {
		log.Printf("dashboard: loading contexts: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load stats"})
		return
	}

	totalMessages := 0
	userMessages := 0
	for _, userCtx := range store {
		totalMessages += len(userCtx.Messages)
		for _, msg := range userCtx.Messages {
			if msg.Role == entity.RoleUser {
				userMessages++
			}
		}
	}

	snapshot := s.status.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"conversations":  len(store),
		"total_messages": totalMessages,
		"user_messages":  userMessages,
		"total_runs":     snapshot.TotalRuns,
		"replies_sent":   snapshot.RepliesSent,
	})
}

// handleSearch exposes the product matcher for manual catalog checks.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing query parameter 'q'"})
		return
	}

	result, err := s.replies.SearchProducts(r.Context(), query)
	if err != nil {
		log.Printf("dashboard: search %q: %v", query, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "search failed"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.status.Pause()
	writeJSON(w, http.StatusOK, map[string]bool{"paused": true})
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	s.status.Resume()
	writeJSON(w, http.StatusOK, map[string]bool{"paused": false})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("dashboard: encoding response: %v", err)
	}
}
