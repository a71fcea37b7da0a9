package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/profilehub/backend/internal/api"
	"github.com/profilehub/backend/internal/api/handlers"
	mw "github.com/profilehub/backend/internal/api/middleware"
	"github.com/profilehub/backend/internal/repository"
	"github.com/profilehub/backend/internal/services"
	"github.com/profilehub/backend/pkg/config"
	"github.com/profilehub/backend/pkg/database"
	"github.com/profilehub/backend/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting backend API",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
		zap.String("frontend_url", cfg.FrontendURL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Requests are served whether or not this ever succeeds.
	conn := database.NewConnector(cfg.DatabaseURL, database.DefaultOptions(cfg.Development()))
	conn.ConnectAsync(ctx)

	jwtSecret := []byte(cfg.JWTSecret)
	if len(jwtSecret) == 0 {
		log.Warn("JWT_SECRET not set, using default (INSECURE for production)")
		jwtSecret = []byte("change-me-in-production-please")
	}
	requireAuth := mw.Auth(jwtSecret)

	authSvc := services.NewAuthService(repository.NewUserRepository(conn), jwtSecret)
	authHandler := handlers.NewAuthHandler(authSvc, handlers.CookieOptions{Secure: !cfg.Development()})
	dataHandler := handlers.NewDataHandler(repository.NewUserDataRepository(conn))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var limiter *mw.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = mw.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		defer limiter.Stop()
	}

	var cors *mw.CORSConfig
	if cfg.CORSEnabled {
		c := mw.NewCORSConfig(cfg.FrontendURL)
		cors = &c
		if cfg.FrontendURL == "" {
			log.Warn("FRONTEND_URL not set, no cross-origin caller is allowed")
		}
	}

	router := api.NewRouter(api.Dependencies{
		Auth:            authHandler.Routes(requireAuth),
		Data:            dataHandler.Routes(requireAuth),
		Readiness:       conn,
		SecurityHeaders: cfg.SecurityHeaders,
		CSP:             mw.DefaultCSP(),
		CORS:            cors,
		BodyLimit:       cfg.BodyLimit,
		RateLimiter:     limiter,
		Registry:        reg,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}

	if err := conn.Close(); err != nil {
		log.Error("database close error", zap.Error(err))
	}
}
