package api

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flare/internal/services"
)

func (handler *Handler) AuthStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"locked":     handler.auth.Enabled(),
		"unlocked":   handler.unlocked(c),
		"csrf_token": csrfToken(c),
	})
}

func (handler *Handler) Unlock(c *fiber.Ctx) error {
	if !handler.auth.Enabled() {
		return c.JSON(fiber.Map{"ok": true})
	}

	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.unlockLimiter.blocked(limiterKey, now) {
		wait := handler.unlockLimiter.retryAfter(limiterKey, now)
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		return apiError(c, fiber.StatusTooManyRequests, "too many unlock attempts")
	}

	input := unlockInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if strings.TrimSpace(input.Passphrase) == "" {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.auth.VerifyPassphrase(input.Passphrase); err != nil {
		if errors.Is(err, services.ErrPassphraseMismatch) {
			handler.unlockLimiter.addFailure(limiterKey, now)
			handler.logger.WithField("ip", limiterKey).Warn("failed unlock attempt")
			return apiError(c, fiber.StatusUnauthorized, "invalid passphrase")
		}
		return handler.respondServiceError(c, err, "failed to unlock")
	}

	handler.unlockLimiter.reset(limiterKey)
	if err := handler.setAuthCookie(c); err != nil {
		return handler.respondServiceError(c, err, "failed to create session")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Lock(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}
