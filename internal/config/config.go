package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/flare/internal/security"
)

const (
	minSecretKeyLength = 32

	LogFormatText = "text"
	LogFormatJSON = "json"
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

var (
	ErrInvalidPort      = errors.New("PORT must be between 1 and 65535")
	ErrInvalidSecretKey = errors.New("SECRET_KEY must be at least 32 characters and not a placeholder")
	ErrMissingSecretKey = errors.New("SECRET_KEY is required when PASSPHRASE_HASH is set")
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port           int    `env:"PORT" envDefault:"8080"`
	DBPath         string `env:"DB_PATH"`
	TimeZone       string `env:"TZ" envDefault:"UTC"`
	SecretKey      string `env:"SECRET_KEY"`
	PassphraseHash string `env:"PASSPHRASE_HASH"`
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"false"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"text"`
	BackupDir      string `env:"BACKUP_DIR"`
	BackupSchedule string `env:"BACKUP_SCHEDULE" envDefault:"0 3 * * *"`
	BackupKeep     int    `env:"BACKUP_KEEP" envDefault:"14"`
	TrendDays      int    `env:"TREND_DAYS" envDefault:"30"`

	Location *time.Location `env:"-"`
	// GeneratedSecretKey is set when no SECRET_KEY was configured and a
	// random one was created for this process.
	GeneratedSecretKey bool `env:"-"`
}

// Load reads an optional .env file, then the process environment.
// Variables already present in the environment take precedence over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) normalize() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return ErrInvalidPort
	}

	cfg.DBPath = strings.TrimSpace(cfg.DBPath)
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join("data", "flare.db")
	}

	location, err := time.LoadLocation(strings.TrimSpace(cfg.TimeZone))
	if err != nil {
		return fmt.Errorf("invalid TZ %q: %w", cfg.TimeZone, err)
	}
	cfg.Location = location

	secretKey, generated, err := resolveSecretKey(cfg.SecretKey, cfg.PassphraseHash)
	if err != nil {
		return err
	}
	cfg.SecretKey = secretKey
	cfg.GeneratedSecretKey = generated
	cfg.PassphraseHash = strings.TrimSpace(cfg.PassphraseHash)

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if cfg.LogFormat != LogFormatText && cfg.LogFormat != LogFormatJSON {
		return fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	cfg.BackupDir = strings.TrimSpace(cfg.BackupDir)
	if cfg.BackupDir != "" {
		if _, err := cron.ParseStandard(cfg.BackupSchedule); err != nil {
			return fmt.Errorf("invalid BACKUP_SCHEDULE: %w", err)
		}
	}
	if cfg.BackupKeep < 1 {
		return fmt.Errorf("BACKUP_KEEP must be positive, got %d", cfg.BackupKeep)
	}
	if cfg.TrendDays < 1 {
		return fmt.Errorf("TREND_DAYS must be positive, got %d", cfg.TrendDays)
	}
	return nil
}

func (cfg *Config) ListenAddress() string {
	return fmt.Sprintf(":%d", cfg.Port)
}

func (cfg *Config) BackupsEnabled() bool {
	return cfg.BackupDir != ""
}

// resolveSecretKey validates a configured key. Without a passphrase lock an
// absent key is replaced by a random one for the life of the process.
func resolveSecretKey(raw string, passphraseHash string) (string, bool, error) {
	secretKey := strings.TrimSpace(raw)
	if secretKey == "" {
		if strings.TrimSpace(passphraseHash) != "" {
			return "", false, ErrMissingSecretKey
		}
		generated, err := security.NewSecretKey()
		if err != nil {
			return "", false, fmt.Errorf("generate secret key: %w", err)
		}
		return generated, true, nil
	}

	if _, insecure := insecureSecretKeys[secretKey]; insecure {
		return "", false, ErrInvalidSecretKey
	}
	if len(secretKey) < minSecretKeyLength {
		return "", false, ErrInvalidSecretKey
	}
	return secretKey, false, nil
}
