package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mpetrenko/online_store/internal/config"
	"github.com/mpetrenko/online_store/internal/db"
	"github.com/mpetrenko/online_store/internal/events"
	"github.com/mpetrenko/online_store/internal/httpserver"
	"github.com/mpetrenko/online_store/internal/logging"
	"github.com/mpetrenko/online_store/internal/loggingmw"
	"github.com/mpetrenko/online_store/internal/repo"
	"github.com/mpetrenko/online_store/internal/search"
	"github.com/mpetrenko/online_store/internal/service"
	"github.com/mpetrenko/online_store/internal/session"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db init error: %v", err)
	}

	sessions, err := session.NewRedisStore(initCtx, cfg.RedisAddr)
	if err != nil {
		cancel()
		log.Fatalf("redis init error: %v", err)
	}
	cancel()

	producer := events.NewProducer([]string{cfg.KafkaAddress})

	esClient, err := search.NewClient(search.ClientConfig{
		URL:      cfg.ESURL,
		User:     cfg.ESUser,
		Password: cfg.ESPassword,
	})
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}
	index := search.NewIndex(esClient, "products")

	store := &repo.GormRepo{DB: gormDB}

	deps := &httpserver.Deps{
		Auth:    &httpserver.AuthHTTP{Svc: &service.AuthService{Repo: store, Sessions: sessions, Events: producer}},
		Catalog: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: store, Index: index, Events: producer}},
		Cart:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: store, Events: producer}},
		Session: &httpserver.SessionMiddleware{Store: sessions, Repo: store},
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := sessions.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
