package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"

	"tunecrate/internal/auth"
	"tunecrate/internal/logging"
	"tunecrate/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logging.SetGlobal(logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stdout,
	}))

	db, err := openDatabase(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	dataStore := store.New(db)
	tokens := auth.NewManager(auth.ManagerConfig{
		Secret: cfg.JWTSecret,
		Issuer: "tunecrate",
		Expiry: cfg.TokenExpiry,
	})

	handler := newHTTPHandler(cfg, dataStore, tokens)

	log.Info().Str("addr", cfg.Addr).Msg("starting API server")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
