package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	"warboard/internal/controllers"
	"warboard/internal/events"
	"warboard/internal/providers"
	"warboard/internal/session"
	"warboard/internal/structures"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	WebServer *http.Server
	sessions  session.ManagerInterface
	hub       events.HubInterface
	logger    providers.Logger
}

func NewApp(eventsController *controllers.EventsController, healthController *controllers.HealthController, sessions session.ManagerInterface, hub events.HubInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	router.Mount(apiMux)

	instrumentedAPI := providers.AccessLogMiddleware(logger, providers.MetricsMiddleware(metrics, apiMux))

	// Outer mux: infrastructure, the event stream and the instrumented API.
	// The websocket stays outside the middleware so it can hijack the
	// connection and live longer than the write timeout.
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	mux.HandleFunc("/events", eventsController.Stream)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	return &App{
		WebServer: &http.Server{
			Addr:        conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:     mux,
			ReadTimeout: 10 * time.Second,
			IdleTimeout: 60 * time.Second,
		},
		sessions: sessions,
		hub:      hub,
		logger:   logger,
	}
}

// Run serves until SIGINT/SIGTERM or ctx is done, then shuts down in order:
// HTTP server, sessions (and their pollers), event hub.
func (a *App) Run(ctx context.Context) error {
	defer a.logger.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
		if err := a.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		a.close()
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Open event streams only end once the hub closes their channels.
	a.WebServer.RegisterOnShutdown(a.hub.Close)
	err := a.WebServer.Shutdown(shutdownCtx)
	a.close()
	if err != nil {
		return err
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}

func (a *App) close() {
	a.sessions.CloseAll()
	a.hub.Close()
}
