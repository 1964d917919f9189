// internal/config/config.go
//
// Runtime configuration.
// Precedence (lowest to highest):
//   1. Defaults.
//   2. Optional YAML file (--config / HANGMAN_CONFIG).
//   3. Environment variables (a .env file is loaded by main via godotenv).

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/hangman/internal/words"
)

// Config holds the application configuration.
type Config struct {
	Addr           string        `yaml:"addr"`
	DBDriver       string        `yaml:"db_driver"` // "sqlite3" (cgo) or "sqlite" (pure Go)
	DBPath         string        `yaml:"db_path"`   // empty keeps scores in memory
	LogLevel       string        `yaml:"log_level"`
	ClientOrigin   string        `yaml:"client_origin"`
	PlayerSecret   string        `yaml:"player_secret"`
	WordsFile      string        `yaml:"words_file"` // overrides the built-in Spanish list
	WordAPIURL     string        `yaml:"word_api_url"`
	WordAPITimeout time.Duration `yaml:"word_api_timeout"`
	MusicURL       string        `yaml:"music_url"`
	DailySalt      string        `yaml:"daily_salt"`
}

// DefaultMusicURL is the looped background track.
const DefaultMusicURL = "https://www.bensound.com/bensound-music/bensound-clearday.mp3"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:           ":5175",
		DBDriver:       "sqlite3",
		DBPath:         "./data/hangman.db",
		LogLevel:       "info",
		PlayerSecret:   "dev_secret_change_me",
		WordAPIURL:     words.DefaultRemoteURL,
		WordAPITimeout: 5 * time.Second,
		MusicURL:       DefaultMusicURL,
		DailySalt:      "local_dev_salt",
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// any) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Addr = ":" + v
	}
	str := map[string]*string{
		"DB_DRIVER":     &c.DBDriver,
		"LOG_LEVEL":     &c.LogLevel,
		"CLIENT_ORIGIN": &c.ClientOrigin,
		"PLAYER_SECRET": &c.PlayerSecret,
		"WORDS_FILE":    &c.WordsFile,
		"WORD_API_URL":  &c.WordAPIURL,
		"MUSIC_URL":     &c.MusicURL,
		"DAILY_SALT":    &c.DailySalt,
	}
	for k, dst := range str {
		if v := os.Getenv(k); v != "" {
			*dst = v
		}
	}
	// DB_PATH may be set to empty on purpose to run without a database.
	if v, ok := os.LookupEnv("DB_PATH"); ok {
		c.DBPath = v
	}
	if v := os.Getenv("WORD_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("WORD_API_TIMEOUT: %w", err)
		}
		c.WordAPITimeout = d
	}
	return nil
}
