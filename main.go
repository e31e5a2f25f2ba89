package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"airhotel-web/config"
	"airhotel-web/jobs"
	"airhotel-web/routes"
	"airhotel-web/services"
	"airhotel-web/services/logger"
	"airhotel-web/services/notification"
)

// newLogger returns the closer of the log file, or nil when logging to stderr
func newLogger(cfg config.Config) (logger.Logger, io.Closer) {
	level := logger.ParseLevel(cfg.LogLevel)
	if cfg.LogDir == "" {
		return logger.NewDefaultLogger(level), nil
	}
	fileLogger, closer, err := logger.NewFileLogger(level, cfg.LogDir)
	if err != nil {
		log.Printf("Warning: cannot log to %s, using stderr: %v", cfg.LogDir, err)
		return logger.NewDefaultLogger(level), nil
	}
	return fileLogger, closer
}

func newCache(ctx context.Context, cfg config.Config, appLogger logger.Logger) services.Cache {
	rdb, err := config.ConnectRedis(ctx, cfg)
	if err != nil {
		appLogger.Warn("Redis unavailable, keeping session and search in memory: %v", err)
		return services.NewMemoryCache()
	}
	if rdb == nil {
		return services.NewMemoryCache()
	}
	appLogger.Info("Connected to Redis at %s", cfg.RedisAddr)
	return services.NewRedisCache(rdb)
}

func main() {
	config.LoadEnv()
	if err := run(config.Load()); err != nil {
		log.Fatal(err)
	}
}

// run wires the app and serves until the router stops
func run(cfg config.Config) error {
	appLogger, logFile := newLogger(cfg)
	if logFile != nil {
		defer logFile.Close()
	}
	ctx := context.Background()

	router, m, c := config.InitApp(cfg, appLogger)
	cache := newCache(ctx, cfg, appLogger)

	client, err := services.NewAPIClient(services.APIClientOptions{
		BaseURL:           cfg.APIBaseURL,
		Timeout:           cfg.RequestTimeout,
		Logger:            appLogger,
		SessionCookie:     cfg.SessionCookie,
		SessionCookieName: cfg.SessionCookieName,
	})
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	gate := services.NewSessionGate(services.SessionGateOptions{
		API:      client,
		Cache:    cache,
		CacheKey: cfg.APIBaseURL,
		Provider: cfg.OAuthProvider,
		Logger:   appLogger,
	})
	client.SetSessionObserver(gate)

	broadcaster := notification.NewMelodyService(m)
	toasts := notification.NewToastQueue(notification.ToastQueueOptions{
		Notifier: broadcaster,
		Logger:   appLogger,
	})
	defer toasts.Close()

	wf := services.NewWorkflow(services.WorkflowOptions{
		Session: gate,
		Availability: services.NewAvailabilityService(services.AvailabilityServiceOptions{
			API:     client,
			Session: gate,
			Logger:  appLogger,
		}),
		RoomTypes: services.NewRoomTypeService(services.RoomTypeServiceOptions{
			API:     client,
			Session: gate,
			Logger:  appLogger,
		}),
		Reservations: services.NewReservationService(services.ReservationServiceOptions{
			API:      client,
			Session:  gate,
			Toasts:   toasts,
			Currency: cfg.Currency,
			Logger:   appLogger,
		}),
		Toasts:      toasts,
		Cache:       cache,
		CacheKey:    cfg.APIBaseURL,
		Broadcaster: broadcaster,
		Logger:      appLogger,
	})
	wf.Start(ctx)

	routes.SetupRoutes(router, wf, m, appLogger)

	if err := jobs.InitCronJobs(c, wf, cfg.RefreshSchedule, cfg.RequestTimeout, appLogger); err != nil {
		return fmt.Errorf("failed to initialize cron jobs: %w", err)
	}
	c.Start()
	defer c.Stop()

	appLogger.Info("Server starting on port %s against %s", cfg.Port, cfg.APIBaseURL)
	if err := router.Run(":" + cfg.Port); err != nil {
		appLogger.Error("Failed to start server: %v", err)
		return err
	}
	return nil
}
