package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/flare/internal/services"
)

var (
	errInvalidPayload   = errors.New("invalid payload")
	errInvalidTrendDays = errors.New("invalid trend days")
)

func parseDayParam(raw string) (string, error) {
	return services.ParseDayKey(raw)
}

// parseDayRange reads optional from/to query values. A missing end defaults
// to today and a missing start to the trailing window before the end.
func (handler *Handler) parseDayRange(c *fiber.Ctx) (string, string, error) {
	to := handler.tracker.Today()
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		parsed, err := parseDayParam(raw)
		if err != nil {
			return "", "", err
		}
		to = parsed
	}

	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		from, err := parseDayParam(raw)
		if err != nil {
			return "", "", err
		}
		return from, to, nil
	}

	from, err := services.ShiftDay(to, -(handler.trendDays - 1))
	if err != nil {
		return "", "", err
	}
	return from, to, nil
}

// parseDayPayload decodes the whole-day form. Unknown fields, including
// categories other than endo and ibs, are rejected.
func parseDayPayload(c *fiber.Ctx) (services.DayEntryInput, error) {
	input := services.DayEntryInput{}
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return input, errInvalidPayload
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		return services.DayEntryInput{}, errInvalidPayload
	}
	return input, nil
}

func parseTrendDays(raw string, fallback int) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return fallback, nil
	}
	days, err := strconv.Atoi(value)
	if err != nil || days < 1 || days > services.MaxTrendDays {
		return 0, errInvalidTrendDays
	}
	return days, nil
}
