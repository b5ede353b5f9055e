package api

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/flare/internal/services"
)

func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.Tracker == nil {
		return nil, errors.New("tracker service is required")
	}
	if cfg.Auth == nil {
		cfg.Auth = services.NewAuthService("")
	}
	if cfg.Auth.Enabled() && len(cfg.SecretKey) == 0 {
		return nil, errors.New("secret key is required when the lock is enabled")
	}
	if cfg.TrendDays <= 0 {
		cfg.TrendDays = services.DefaultTrendDays
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	return &Handler{
		tracker:       cfg.Tracker,
		auth:          cfg.Auth,
		secretKey:     []byte(cfg.SecretKey),
		cookieSecure:  cfg.CookieSecure,
		trendDays:     services.NormalizeTrendDays(cfg.TrendDays),
		logger:        cfg.Logger,
		unlockLimiter: newAttemptLimiter(unlockAttemptLimit, unlockAttemptWindow),
		now:           time.Now,
	}, nil
}
