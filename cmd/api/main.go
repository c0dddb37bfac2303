package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/codewisehub/codewisehub-backend/internal/pkg/logger"
	"github.com/codewisehub/codewisehub-backend/internal/server"
)

func main() {
	// Local development loads secrets from .env; in deployed environments the
	// variables come from the process environment and the file is absent.
	if err := godotenv.Load(); err == nil {
		logger.Info().Msg("Loaded environment from .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
