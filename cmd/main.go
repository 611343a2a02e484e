// Package main is the entry point for the translator service.
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/intl-tools/translator-service/config"
	"github.com/intl-tools/translator-service/internal/app"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration error")
	}

	application, err := app.InitializeApp(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Initialization error")
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Error().Err(err).Msg("Close error")
		}
	}()

	server := app.NewServer(application.Router, cfg.Server)
	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
