package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/linearmarketingsolutions/website/cmd/mainconfig"
	"github.com/linearmarketingsolutions/website/internal/api/router"
	appconfig "github.com/linearmarketingsolutions/website/internal/config"
	"github.com/linearmarketingsolutions/website/internal/http/handlers"
	"github.com/linearmarketingsolutions/website/internal/observability/metrics"
	"github.com/linearmarketingsolutions/website/pkg/logging"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting site server",
		"env", cfg.Env,
		"port", cfg.Port,
		"email_provider", cfg.EmailProvider,
	)

	handler, err := buildHandler(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func buildHandler(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (http.Handler, error) {
	sender, err := mainconfig.NewEmailSender(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var metricsHandler http.Handler
	var contactMetrics *metrics.ContactMetrics
	if cfg.MetricsEnabled {
		metricsHandler, contactMetrics = setupContactMetrics()
	}

	contactHandler := handlers.NewContactHandler(handlers.ContactHandlerConfig{
		Sender:      sender,
		Logger:      logger,
		Metrics:     contactMetrics,
		SendTimeout: cfg.EmailSendTimeout,
	})

	return router.New(&router.Config{
		Logger:         logger,
		ContactHandler: contactHandler,
		MetricsHandler: metricsHandler,
		StaticDir:      cfg.StaticDir,
	}), nil
}

func setupContactMetrics() (http.Handler, *metrics.ContactMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics.NewContactMetrics(reg)
}
