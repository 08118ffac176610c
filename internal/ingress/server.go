// Package ingress exposes the webhook HTTP surface. It validates the
// secret path, normalizes raw updates and hands them to the pump; all
// dialogue work happens off the request goroutine.
package ingress

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/identbot/core/config"
	"github.com/m3rciful/identbot/core/logger"
	"github.com/m3rciful/identbot/internal/event"
	"github.com/m3rciful/identbot/internal/pump"
)

const maxUpdateBody = 1 << 20

// Submitter accepts normalized events for asynchronous processing.
type Submitter interface {
	Submit(ev event.Event) error
}

// Server is the webhook listener.
type Server struct {
	httpSrv *http.Server
	handler http.Handler
	secret  string
	submit  Submitter
}

// New builds the server from webhook configuration. The secret path is
// the only route that accepts updates; everything else except the
// health probe is 404.
func New(cfg coreconfig.WebhookConfig, submit Submitter) *Server {
	s := &Server{
		secret: cfg.SecretPath,
		submit: submit,
	}

	r := chi.NewRouter()
	r.Get("/", s.handleHealth)
	// Wildcard because the secret path may span segments.
	r.Post("/*", s.handleUpdate)
	s.handler = r

	s.httpSrv = &http.Server{
		Addr:              net.JoinHostPort(cfg.Listen, strconv.Itoa(cfg.Port)),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler exposes the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	logger.Info(context.Background(), "ingress", "listen", slog.String("addr", s.httpSrv.Addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("I am alive!"))
}

// handleUpdate accepts one Bot API update. Malformed or unsupported
// payloads are acknowledged with an empty 200 anyway: the provider
// redelivers anything else, and redelivery cannot fix a payload we
// already decided to ignore.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if subtle.ConstantTimeCompare([]byte(chi.URLParam(r, "*")), []byte(s.secret)) != 1 {
		http.NotFound(w, r)
		return
	}

	var upd tele.Update
	body := http.MaxBytesReader(w, r.Body, maxUpdateBody)
	if err := json.NewDecoder(body).Decode(&upd); err != nil {
		logger.Warn(r.Context(), "ingress", "update.undecodable",
			slog.String("error", logger.SanitizeLimit(err.Error(), 256)))
		w.WriteHeader(http.StatusOK)
		return
	}

	ev, err := event.Normalize(&upd)
	if err != nil {
		logger.Warn(r.Context(), "ingress", "update.ignored",
			slog.Int("update_id", upd.ID),
			slog.String("reason", logger.SanitizeLimit(err.Error(), 256)))
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := s.submit.Submit(ev); err != nil {
		if errors.Is(err, pump.ErrClosed) {
			// Shutting down. A non-2xx makes the provider redeliver later.
			http.Error(w, "shutting down", http.StatusServiceUnavailable)
			return
		}
		logger.Error(r.Context(), "ingress", "submit.fail",
			slog.String("error", logger.SanitizeLimit(err.Error(), 256)))
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx := logger.WithRID(r.Context(), logger.BuildRID(ev.UpdateID, ev.ChatID, ev.ActorID))
	logger.Debug(ctx, "ingress", "update.accepted",
		slog.String("rid", logger.RIDFrom(ctx)),
		slog.String("kind", string(ev.Kind)))
	w.WriteHeader(http.StatusOK)
}
