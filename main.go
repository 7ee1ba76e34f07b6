package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-insecure-secret-change" // development fallback
		log.Warn().Msg("JWT_SECRET not set; using insecure development secret")
	}

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := seedAdmin(db, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("seed admin account")
	}

	// `./hireline migrate` runs migrations and seeding then exits; useful
	// for CI or manual setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		fmt.Println("migration and seeding completed")
		return
	}

	storage, err := NewVideoStorage(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init video storage")
	}
	notifier := NewNotifier(cfg, log)
	notifier.Start()

	store := NewApplicationStore(db)
	auth := NewAuthService(db, cfg.JWTSecret)
	srv := NewServer(cfg, store, storage, notifier, auth, log)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("hireline starting")
	if err := srv.Routes().Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
