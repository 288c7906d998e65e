package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"socialnet/cmd/app"
	"socialnet/internal/config"
	handlers "socialnet/internal/handler"
	"socialnet/internal/middleware"
	"socialnet/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

func setupLogging(cfg config.Log) {
	if cfg.File == "" {
		return
	}

	log.SetOutput(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	})
}

func main() {
	cfg := config.LoadConfig()
	setupLogging(cfg.Log)

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, media, services := app.App(ctx, cfg)
	defer db.CloseDB()

	h := handlers.NewHandlers(services, media, db, cfg)

	handlerChain := middleware.Chain(
		newRouter(h, services.Auth),
		middleware.Logging,
		middleware.CORS(cfg),
	)

	publisher := scheduler.NewPublishScheduler(services.Post, cfg.PublishSweepInterval)
	go publisher.Run(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           handlerChain,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s (database %s)", srv.Addr, cfg.DB.DbNAME)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error: graceful shutdown failed: %v", err)
	}
}
