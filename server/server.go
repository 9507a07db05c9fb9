// Package server exposes the webhook HTTP endpoint: Bot API updates arrive as
// POSTs on the root path, and a GET on the same path answers health checks.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hazemely102/tikinfo/bot"
	"github.com/hazemely102/tikinfo/dedup"
)

const healthText = "Bot is alive and processing webhooks!"

// Server routes webhook traffic to the bot handler.
type Server struct {
	handler *bot.Handler
	seen    *dedup.Cache
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithDedup enables update-ID deduplication.
func WithDedup(seen *dedup.Cache) Option {
	return func(s *Server) { s.seen = seen }
}

// New creates a Server.
func New(handler *bot.Handler, opts ...Option) *Server {
	s := &Server{handler: handler, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.health)
	r.Post("/", s.webhook)
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.logger.InfoContext(r.Context(), "health check ping received")
	w.Write([]byte(healthText)) //nolint:errcheck // best effort
}

func (s *Server) webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s.logger.InfoContext(ctx, "webhook received")

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.logger.ErrorContext(ctx, "malformed update payload", "error", err)
		http.Error(w, "Error processing update", http.StatusInternalServerError)
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		s.logger.WarnContext(ctx, "update without a text message", "update_id", update.UpdateID)
		w.Write([]byte("OK")) //nolint:errcheck // best effort
		return
	}

	if s.seen != nil && s.seen.Seen(ctx, update.UpdateID) {
		s.logger.DebugContext(ctx, "duplicate update skipped", "update_id", update.UpdateID)
		w.Write([]byte("OK")) //nolint:errcheck // best effort
		return
	}

	if err := s.handler.HandleMessage(ctx, update.Message.Chat.ID, update.Message.Text); err != nil {
		s.logger.ErrorContext(ctx, "update processing failed", "update_id", update.UpdateID, "error", err)
		http.Error(w, "Error processing update", http.StatusInternalServerError)
		return
	}

	w.Write([]byte("OK")) //nolint:errcheck // best effort
}
