// Package config loads server settings from the environment.
//
// A .env file in the working directory is read first (missing is fine),
// then variables are parsed into Config with struct tags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/robalobadob/wordle-env/internal/game"
)

// Config holds every setting the server and CLI read.
type Config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogPretty switches zerolog to its human-readable console writer.
	LogPretty bool `env:"LOG_PRETTY"`

	// WordsFile replaces the embedded dictionary when set.
	WordsFile      string `env:"WORDS_FILE"`
	AlphabetPolicy string `env:"ALPHABET_POLICY" envDefault:"max"`
	Scoring        string `env:"SCORING" envDefault:"independent"`
	SeedSalt       string `env:"SEED_SALT" envDefault:"local_dev_salt"`

	ClientOrigin   string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	MaxSessions    int           `env:"MAX_SESSIONS" envDefault:"10000"`
	// AllowFixedAnswer lets clients choose the hidden word (testing only).
	AllowFixedAnswer bool `env:"ALLOW_FIXED_ANSWER"`

	// Agent auth is enabled when both are set.
	JWTSecret       string        `env:"JWT_SECRET"`
	AgentKeyHash    string        `env:"AGENT_KEY_HASH"`
	JWTExpiresAfter time.Duration `env:"JWT_EXPIRES_AFTER" envDefault:"24h"`
}

// Load reads .env (if present) and parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads Config from the process environment only.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := c.GameConfig(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// AuthEnabled reports whether /env routes require an agent token.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != "" && c.AgentKeyHash != ""
}

// GameConfig translates the game-related settings.
func (c Config) GameConfig() (game.Config, error) {
	policy, err := game.ParseAlphabetPolicy(c.AlphabetPolicy)
	if err != nil {
		return game.Config{}, err
	}
	scoring, err := game.ParseScoring(c.Scoring)
	if err != nil {
		return game.Config{}, err
	}
	return game.Config{Policy: policy, Scoring: scoring, Salt: c.SeedSalt}, nil
}
