// Command server runs the OTA revenue console backend: an HTTP API over
// SQLite for OTA accounts, promotional activities, pricing strategies, and
// session-based authentication.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hotelrm/go-ota-backend/internal/config"
	httpapi "github.com/hotelrm/go-ota-backend/internal/http"
	"github.com/hotelrm/go-ota-backend/internal/observability"
	"github.com/hotelrm/go-ota-backend/internal/seed"
	"github.com/hotelrm/go-ota-backend/internal/services"
	"github.com/hotelrm/go-ota-backend/internal/session"
	"github.com/hotelrm/go-ota-backend/internal/store"
	"github.com/hotelrm/go-ota-backend/internal/sysutil"
)

// version is stamped by the build; "dev" for local runs.
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	// Storage
	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if cfg.OTEL.Enabled {
		if err := store.EnableTracing(db); err != nil {
			log.Fatal().Err(err).Msg("db tracing setup failed")
		}
	}
	if err := store.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	st := store.NewGormStore(db)

	if cfg.SeedEnabled {
		if err := seed.Run(ctx, st, seed.Options{
			AdminPassword: cfg.SeedAdminPass,
			BcryptCost:    cfg.BcryptCost,
		}); err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
	}

	// Sessions: Redis when configured, otherwise in-process.
	var sessions session.Store
	var memSessions *session.MemoryStore
	if cfg.Session.RedisAddr != "" {
		sessions = session.NewRedisStore(&redis.Options{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		log.Info().Str("addr", cfg.Session.RedisAddr).Msg("using redis session store")
	} else {
		memSessions = session.NewMemoryStore(cfg.Session.SweepInterval)
		sessions = memSessions
	}

	auth := &services.AuthService{
		Store:      st,
		Sessions:   sessions,
		TTL:        cfg.Session.TTL,
		BcryptCost: cfg.BcryptCost,
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, st, auth, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("version", version).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	if memSessions != nil {
		memSessions.Stop()
	}
	if err := st.Close(); err != nil {
		log.Error().Err(err).Msg("store close error")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown error")
	}
	log.Info().Msg("server stopped")
}
