package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sekolahku/perencana/internal/calendar"
	"github.com/sekolahku/perencana/internal/plan"
	"github.com/sekolahku/perencana/internal/platform/cache"
	"github.com/sekolahku/perencana/internal/platform/config"
	"github.com/sekolahku/perencana/internal/platform/database"
	"github.com/sekolahku/perencana/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := database.Connect(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	docs, err := store.NewPostgresStore(db.Pool)
	if err != nil {
		slog.Error("failed to create document store", "error", err)
		os.Exit(1)
	}
	if err := docs.Migrate(ctx); err != nil {
		slog.Error("failed to migrate document store", "error", err)
		os.Exit(1)
	}

	var docStore store.Store = docs
	var redisCache *cache.Cache
	if cfg.Cache.Enabled {
		redisCache, err = cache.Connect(ctx, cfg.Cache.URL)
		if err != nil {
			slog.Error("failed to connect cache", "error", err)
			os.Exit(1)
		}
		defer redisCache.Close()
		docStore = store.NewCachedStore(docs, redisCache.Client, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	}

	tables, err := calendar.LoadTables(cfg.Calendar.KeywordsPath)
	if err != nil {
		slog.Error("failed to load keyword tables", "error", err)
		os.Exit(1)
	}

	planner := plan.New(plan.Config{Store: docStore})

	mux := newMux(server{
		planner: planner,
		tables:  tables,
		db:      db,
		cache:   redisCache,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
