// Package app assembles the bot and owns its lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	coreconfig "github.com/m3rciful/identbot/core/config"
	"github.com/m3rciful/identbot/core/logger"
	"github.com/m3rciful/identbot/internal/dispatch"
	"github.com/m3rciful/identbot/internal/engine"
	"github.com/m3rciful/identbot/internal/event"
	"github.com/m3rciful/identbot/internal/ingress"
	"github.com/m3rciful/identbot/internal/profile"
	"github.com/m3rciful/identbot/internal/pump"
	"github.com/m3rciful/identbot/internal/session"
	"github.com/m3rciful/identbot/internal/transport"
)

const shutdownTimeout = 10 * time.Second

// App wires ingress, pump, engine and transport together.
type App struct {
	cfg *coreconfig.Config

	store      *session.Store
	engine     *engine.Engine
	dispatcher *dispatch.Dispatcher
	pump       *pump.Pump
	server     *ingress.Server
	telegram   *transport.Telegram
}

// New builds the application graph. The bot token is verified here, so
// misconfiguration fails before the listener comes up.
func New(cfg *coreconfig.Config) (*App, error) {
	tg, err := transport.New(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}

	gen := profile.NewGenerator(cfg.Generator.FooterAd)
	eng := engine.New(gen, engine.Options{
		ProgressDelay: time.Duration(cfg.Generator.ProgressDelayMS) * time.Millisecond,
	})

	a := &App{
		cfg:        cfg,
		store:      session.NewStore(),
		engine:     eng,
		dispatcher: dispatch.NewDispatcher(tg, nil),
		telegram:   tg,
	}
	a.pump = pump.New(a.processEvent)
	a.server = ingress.New(cfg.Webhook, a.pump)
	return a, nil
}

// Run registers the webhook and serves until ctx is canceled or the
// listener fails. On return every accepted event has been processed.
func (a *App) Run(ctx context.Context) error {
	webhookURL := a.cfg.Webhook.URL + "/" + a.cfg.Webhook.SecretPath
	if err := a.telegram.RegisterWebhook(ctx, webhookURL); err != nil {
		return fmt.Errorf("webhook registration failed: %w", err)
	}
	logger.Info(ctx, "app", "webhook.registered")

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	// Stop the listener first so no new events arrive, then drain.
	a.pump.Close()

	logger.Info(context.Background(), "app", "stopped",
		slog.Int("sessions", a.store.Len()))
	return runErr
}

// processEvent runs on the actor's pump worker. Session mutation and
// rendering happen here, strictly one event at a time per actor.
func (a *App) processEvent(ctx context.Context, ev event.Event) {
	start := time.Now()
	ctx = logger.WithUpdateMeta(ctx, ev.UpdateID, ev.ActorID, ev.ChatID)
	ctx = logger.WithRID(ctx, logger.BuildRID(ev.UpdateID, ev.ChatID, ev.ActorID))

	sess := a.store.Get(ev.ActorID)
	actions := a.engine.Handle(sess, ev)
	a.store.Put(ev.ActorID, sess)

	if viewID, ok := a.dispatcher.Dispatch(ctx, ev, actions); ok {
		sess.BatchMessageID = viewID
		a.store.Put(ev.ActorID, sess)
	}

	logger.Info(ctx, "app", "event.handled",
		slog.String("rid", logger.RIDFrom(ctx)),
		slog.String("kind", string(ev.Kind)),
		slog.Int("actions", len(actions)),
		slog.Duration("took", logger.Took(start)))
}
