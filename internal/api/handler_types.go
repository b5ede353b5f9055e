package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/flare/internal/services"
)

type Handler struct {
	tracker       *services.TrackerService
	auth          *services.AuthService
	secretKey     []byte
	cookieSecure  bool
	trendDays     int
	logger        *logrus.Logger
	unlockLimiter *attemptLimiter
	now           func() time.Time
}

// HandlerConfig carries everything NewHandler needs from the process setup.
type HandlerConfig struct {
	Tracker      *services.TrackerService
	Auth         *services.AuthService
	SecretKey    string
	CookieSecure bool
	TrendDays    int
	Logger       *logrus.Logger
}

type unlockInput struct {
	Passphrase string `json:"passphrase" form:"passphrase"`
}

type periodToggleResponse struct {
	Action services.PeriodToggle   `json:"action"`
	Status services.DayCycleStatus `json:"status"`
}

type symptomCatalogResponse struct {
	Endo []symptomCatalogItem `json:"endo"`
	IBS  []symptomCatalogItem `json:"ibs"`
}

type symptomCatalogItem struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

const (
	authTokenTTL       = 7 * 24 * time.Hour
	unlockTokenPurpose = "unlock"

	unlockAttemptLimit  = 8
	unlockAttemptWindow = 15 * time.Minute
)

type unlockClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}
