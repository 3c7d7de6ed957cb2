package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"analytics-service/config"
	"analytics-service/consumer"
	"analytics-service/driver"
	"analytics-service/gateway"
	"analytics-service/logger"
	"analytics-service/rest"
	"analytics-service/usecase"
	appOtel "analytics-service/utils/otel"
)

// App holds all components of the analytics service.
type App struct {
	httpServer    *http.Server
	dbDriver      *driver.DatabaseDriver
	redisConsumer *consumer.Consumer
	otelShutdown  appOtel.ShutdownFunc
}

// Run initializes all components and starts the service.
// It blocks until ctx is cancelled, then performs graceful shutdown.
func Run(ctx context.Context) error {
	// ── OpenTelemetry ──
	otelCfg := appOtel.ConfigFromEnv()
	otelShutdown, err := appOtel.InitProvider(ctx, otelCfg)
	if err != nil {
		fmt.Printf("Failed to initialize OpenTelemetry: %v\n", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// ── Logger ──
	logger.InitWithOTel(otelCfg.Enabled)
	logger.Logger.Info("Starting analytics-service",
		"service", otelCfg.ServiceName,
		"otel_enabled", otelCfg.Enabled,
	)

	// ── Drivers (infrastructure layer) ──
	dbDriver, err := driver.NewDatabaseDriverFromConfig(ctx)
	if err != nil {
		logger.Logger.Error("Failed to initialize database driver", "err", err)
		return err
	}

	// ── Gateways (anti-corruption layer) ──
	callRepo := gateway.NewCallRepositoryGateway(dbDriver)
	forecastStore := gateway.NewForecastStoreGateway(dbDriver)

	// ── Use cases (application layer) ──
	forecastUsecase := usecase.NewGenerateForecastUsecase(callRepo, forecastStore)

	// ── Redis Streams Consumer ──
	var redisConsumer *consumer.Consumer
	consumerCfg := consumer.ConfigFromEnv()
	if consumerCfg.Enabled {
		eventHandler := consumer.NewForecastEventHandler(forecastUsecase, logger.Logger)
		redisConsumer, err = consumer.NewConsumer(consumerCfg, eventHandler, logger.Logger)
		if err != nil {
			logger.Logger.Error("Failed to create Redis Streams consumer", "err", err)
		} else {
			if err := redisConsumer.Start(ctx); err != nil {
				logger.Logger.Error("Failed to start Redis Streams consumer", "err", err)
			} else {
				logger.Logger.Info("Redis Streams consumer started",
					"stream", consumerCfg.StreamKey,
					"group", consumerCfg.GroupName,
				)
			}
		}
	} else {
		logger.Logger.Info("Redis Streams consumer disabled")
	}

	// ── HTTP server ──
	restHandler := rest.NewHandler(forecastUsecase, logger.Logger)
	e := NewHTTPServer(restHandler, logger.Logger, otelCfg.Enabled, otelCfg.ServiceName)

	app := &App{
		httpServer: &http.Server{
			Addr:              config.HTTPAddr,
			Handler:           e,
			ReadHeaderTimeout: config.ReadHeaderTimeout,
		},
		dbDriver:      dbDriver,
		redisConsumer: redisConsumer,
		otelShutdown:  otelShutdown,
	}

	go func() {
		logger.Logger.Info("http listen", "addr", config.HTTPAddr)
		if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Error("http", "err", err)
		}
	}()

	// ── Wait for shutdown signal ──
	<-ctx.Done()
	app.shutdown()
	return nil
}

// shutdown performs graceful shutdown of all components.
func (a *App) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("http shutdown error", "err", err)
	}
	if a.redisConsumer != nil {
		a.redisConsumer.Stop()
	}
	if a.dbDriver != nil {
		a.dbDriver.Close()
	}

	otelCtx, otelCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer otelCancel()
	if err := a.otelShutdown(otelCtx); err != nil {
		fmt.Printf("Failed to shutdown OpenTelemetry: %v\n", err)
	}
}
