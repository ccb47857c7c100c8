// Package dashboard is the thin read-mostly HTTP API the monitoring UI talks
// to: conversation listings over the persisted context store, bot status, a
// catalog lookup, and a live log stream.
package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/yourusername/instagram-ai-bot/internal/domain/repository"
	"github.com/yourusername/instagram-ai-bot/internal/usecase"
)

// Server wires the dashboard routes.
type Server struct {
	contexts repository.ContextRepository
	replies  usecase.ReplyUseCase
	status   *usecase.StatusUseCase
	logs     *LogHub
}

// NewServer creates the dashboard API server.
func NewServer(contexts repository.ContextRepository, replies usecase.ReplyUseCase, status *usecase.StatusUseCase, logs *LogHub) *Server {
	return &Server{contexts: contexts, replies: replies, status: status, logs: logs}
}

// Router returns the configured mux router.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/conversations", s.handleListConversations).Methods(http.MethodGet)
	api.HandleFunc("/conversations/{username}", s.handleGetConversation).Methods(http.MethodGet)
	api.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	api.HandleFunc("/bot/pause", s.handlePause).Methods(http.MethodPost)
	api.HandleFunc("/bot/resume", s.handleResume).Methods(http.MethodPost)
	api.HandleFunc("/logs/stream", s.handleLogStream).Methods(http.MethodGet)

	return r
}

// ListenAndServe blocks serving the API until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
