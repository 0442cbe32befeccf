package main

import (
	_ "flowtasks/docs"
	"flowtasks/internal/config"
	"flowtasks/internal/logging"
	"flowtasks/internal/server"

	"github.com/rs/zerolog/log"
)

// @title           Flowtasks API
// @version         1.0
// @description     Task and list management with filtered views, ordering and live notifications.

// @host      localhost:8080
// @BasePath  /

// @tag.name Tasks
// @tag.description Task operations

// @tag.name Lists
// @tag.description List operations

// @tag.name Views
// @tag.description Filtered views and counters

// @tag.name Session
// @tag.description Session state and reload

// @schemes http
func main() {
	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogPretty)

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Server initialization failed")
	}

	s.Run()
}
