package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reelist/catalog"
	"reelist/config"
	"reelist/database"
	"reelist/handlers"
	"reelist/logger"
	"reelist/middleware"
	"reelist/services"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Environment, cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	entries, err := catalog.Load(cfg.MoviesListPath)
	if err != nil {
		slog.Error("failed to load curated movies list", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	if err := database.SeedInitialUser(ctx, db, cfg); err != nil {
		slog.Error("failed to seed initial user", "error", err)
		os.Exit(1)
	}

	var cache services.MetadataCache
	if cfg.RedisAddr != "" {
		redisCache, err := services.NewRedisCache(cfg)
		if err != nil {
			slog.Warn("metadata cache disabled", "error", err)
		} else {
			defer redisCache.Close()
			cache = redisCache
			slog.Info("metadata cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.MetadataCacheTTL)
		}
	}

	tmdb := services.NewTMDBClient(cfg, cache)
	watched := services.NewWatchedStore(db)
	catalogSvc := services.NewCatalogService(entries, tmdb, watched)
	auth := services.NewAuthService(db, cfg)

	authHandler := handlers.NewAuthHandler(auth)
	moviesHandler := handlers.NewMoviesHandler(catalogSvc, watched, cfg.PerUser())

	// In user mode the movie endpoints sit behind bearer auth; in global
	// mode they are public and everything shares one watched set.
	protect := func(h http.Handler) http.Handler {
		if cfg.PerUser() {
			return middleware.RequireAuth(auth, h)
		}
		return h
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("GET /api/movies", protect(http.HandlerFunc(moviesHandler.List)))
	mux.Handle("POST /api/movies/{id}/watch", protect(http.HandlerFunc(moviesHandler.Watch)))
	mux.Handle("DELETE /api/movies/{id}/watch", protect(http.HandlerFunc(moviesHandler.Unwatch)))

	handler := middleware.Logging(middleware.CORS(cfg.CORSOrigins, mux))

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: handler,
	}

	go func() {
		slog.Info("reelist is starting",
			"addr", srv.Addr,
			"environment", cfg.Environment,
			"watched_scope", cfg.WatchedScope,
			"catalog_size", len(entries))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	slog.Info("reelist stopped")
}
