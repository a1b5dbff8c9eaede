// Command api runs the Deckwise backend: the HTTP API plus the background
// workers that turn source text into flashcard proposals.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deckwise/backend/internal/config"
	"github.com/deckwise/backend/internal/database"
	"github.com/deckwise/backend/internal/handler"
	"github.com/deckwise/backend/internal/logger"
	"github.com/deckwise/backend/internal/middleware"
	"github.com/deckwise/backend/internal/repository"
	"github.com/deckwise/backend/internal/router"
	"github.com/deckwise/backend/internal/server"
	"github.com/deckwise/backend/internal/service"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 30 * time.Second

func main() {
	fallback := zerolog.New(os.Stderr)

	cfg, err := config.New()
	if err != nil {
		// config.New logs fatally on bad config; this is a safety net.
		fallback.Fatal().Err(err).Msg("failed to load config")
	}

	log, loggerService, err := logger.New(cfg)
	if err != nil {
		fallback.Fatal().Err(err).Msg("failed to initialize logger")
	}

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := database.Migrate(migrateCtx, log, cfg); err != nil {
		cancelMigrate()
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	cancelMigrate()

	s, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(s.DB.Pool, log)

	services, err := service.NewServices(s, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}

	handlers := handler.NewHandlers(s, services)
	middlewares := middleware.NewMiddlewares(s)

	r := router.New(handlers, middlewares)
	s.SetupHTTPServer(r)

	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	if loggerService != nil {
		loggerService.Shutdown(10 * time.Second)
	}

	log.Info().Msg("shutdown complete")
}
