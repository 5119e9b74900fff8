package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ubaidjmi/voiceai-be/internal/api"
	"github.com/ubaidjmi/voiceai-be/internal/auth"
	"github.com/ubaidjmi/voiceai-be/internal/config"
	"github.com/ubaidjmi/voiceai-be/internal/database"
	"github.com/ubaidjmi/voiceai-be/internal/logger"
	"github.com/ubaidjmi/voiceai-be/internal/services"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Token service gets its signing secret from configuration, never from
	// an ambient package variable.
	tokens := auth.NewTokenService(cfg.TokenSecret, cfg.TokenTTL)

	// Set up services
	userService := services.NewUserService(db)
	conversationService := services.NewConversationService(db)
	voiceSampleService := services.NewVoiceSampleService(db)
	settingsService := services.NewSettingsService(db)

	// Set up router
	router := api.NewRouter(cfg, db, tokens, userService, conversationService, voiceSampleService, settingsService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
