package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-env/internal/config"
	"github.com/robalobadob/wordle-env/internal/httpserver"
	"github.com/robalobadob/wordle-env/internal/store"
	"github.com/robalobadob/wordle-env/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(cfg)

	dict, err := words.Load(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	log.Info().Int("words", dict.Len()).Str("source", dictSource(cfg)).Msg("dictionary loaded")

	mem := store.NewMemoryStore(cfg.MaxSessions)
	srv, err := httpserver.New(mem, dict, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid game settings")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("port", cfg.Port).Bool("auth", cfg.AuthEnabled()).Msg("starting wordle-env")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func dictSource(cfg config.Config) string {
	if cfg.WordsFile != "" {
		return cfg.WordsFile
	}
	return "embedded"
}
