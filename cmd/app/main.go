package main

import (
	"schedly/config"
	"schedly/di"
	"schedly/shared/logger"
)

// @title Schedly API
// @version 1.0
// @description Availability, event type and booking API.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
