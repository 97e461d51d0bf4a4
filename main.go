package main

import (
	"os"

	"canova-go/internal/config"
	"canova-go/internal/database"
	logger "canova-go/internal/logging"
	"canova-go/internal/router"

	"go.uber.org/zap"
)

func main() {
	projectRoot, err := os.Getwd()
	if err != nil {
		panic("failed to determine working directory: " + err.Error())
	}

	// Load configuration first; the logger is built from it.
	if err := config.Init(projectRoot); err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	// Initialize Logger
	log, err := logger.Init(projectRoot, config.Conf.Logging)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()
	log.Info("Configuration loaded successfully")

	// Hot-reload configuration changes now that a logger exists
	config.Watch(log)

	// Initialize Database
	database.Init(log)

	// Setup router, passing the logger and database handle to it
	r := router.Setup(log, database.DB)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
