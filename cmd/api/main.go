package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/trashmob-eco/trashmob-api/internal/pkg/logger"
	"github.com/trashmob-eco/trashmob-api/internal/server"
)

// @title TrashMob API
// @version 1.0
// @description API for the TrashMob.eco community cleanup platform

// @contact.name TrashMob.eco
// @contact.url https://www.trashmob.eco

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// A .env file is optional; deployments configure via real env vars.
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, relying on environment")
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
