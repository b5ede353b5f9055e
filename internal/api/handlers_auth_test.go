package api

import (
	"net/http"
	"testing"

	"github.com/terraincognita07/flare/internal/services"
)

const testPassphrase = "quiet morning 7"

func newLockedTestApp(t *testing.T) (*Handler, func(method string, path string, body string, cookies ...*http.Cookie) *http.Response) {
	t.Helper()

	hash, err := services.HashPassphrase(testPassphrase)
	if err != nil {
		t.Fatalf("hash passphrase: %v", err)
	}
	app, handler := newTestAppWithOptions(t, testAppOptions{passphraseHash: hash})
	return handler, func(method string, path string, body string, cookies ...*http.Cookie) *http.Response {
		return doRequest(t, app, method, path, body, cookies...)
	}
}

func TestUnlockedAppServesWithoutCookie(t *testing.T) {
	app, _ := newTestApp(t)

	response := doRequest(t, app, http.MethodGet, "/api/auth/status", "")
	expectStatus(t, response, http.StatusOK)
	status := map[string]any{}
	decodeJSON(t, response, &status)
	if status["locked"] != false || status["unlocked"] != true {
		t.Fatalf("unexpected auth status: %v", status)
	}

	expectStatus(t, doRequest(t, app, http.MethodGet, "/api/periods", ""), http.StatusOK)
}

func TestLockedAppRequiresUnlock(t *testing.T) {
	_, request := newLockedTestApp(t)

	response := request(http.MethodGet, "/api/periods", "")
	expectStatus(t, response, http.StatusUnauthorized)
	if message := readAPIError(t, response); message != "unauthorized" {
		t.Fatalf("expected unauthorized, got %q", message)
	}
	expectStatus(t, request(http.MethodGet, "/healthz", ""), http.StatusOK)

	response = request(http.MethodPost, "/api/auth/unlock", `{"passphrase":"quiet morning 7"}`)
	expectStatus(t, response, http.StatusOK)
	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected auth cookie after unlock")
	}
	if !cookie.HttpOnly {
		t.Fatal("expected auth cookie to be httpOnly")
	}

	expectStatus(t, request(http.MethodGet, "/api/periods", "", cookie), http.StatusOK)

	response = request(http.MethodGet, "/api/auth/status", "", cookie)
	status := map[string]any{}
	decodeJSON(t, response, &status)
	if status["locked"] != true || status["unlocked"] != true {
		t.Fatalf("unexpected auth status: %v", status)
	}

	response = request(http.MethodPost, "/api/auth/lock", "", cookie)
	expectStatus(t, response, http.StatusOK)
	cleared := responseCookie(response.Cookies(), authCookieName)
	if cleared == nil || cleared.Value != "" {
		t.Fatalf("expected cleared auth cookie, got %+v", cleared)
	}
}

func TestLockedAppRejectsForgedCookie(t *testing.T) {
	handler, request := newLockedTestApp(t)

	original := handler.secretKey
	handler.secretKey = []byte("another-secret-key-another-secret")
	token, err := handler.buildToken(authTokenTTL)
	handler.secretKey = original
	if err != nil {
		t.Fatalf("build token: %v", err)
	}

	response := request(http.MethodGet, "/api/periods", "", &http.Cookie{Name: authCookieName, Value: token})
	expectStatus(t, response, http.StatusUnauthorized)
}

func TestUnlockRejectsWrongPassphrase(t *testing.T) {
	_, request := newLockedTestApp(t)

	response := request(http.MethodPost, "/api/auth/unlock", `{"passphrase":"quiet morning 8"}`)
	expectStatus(t, response, http.StatusUnauthorized)
	if message := readAPIError(t, response); message != "invalid passphrase" {
		t.Fatalf("expected invalid passphrase, got %q", message)
	}

	response = request(http.MethodPost, "/api/auth/unlock", `{"passphrase":"  "}`)
	expectStatus(t, response, http.StatusBadRequest)
}

func TestUnlockRateLimited(t *testing.T) {
	_, request := newLockedTestApp(t)

	for attempt := 0; attempt < unlockAttemptLimit; attempt++ {
		expectStatus(t, request(http.MethodPost, "/api/auth/unlock", `{"passphrase":"wrong guess 1"}`), http.StatusUnauthorized)
	}

	response := request(http.MethodPost, "/api/auth/unlock", `{"passphrase":"quiet morning 7"}`)
	expectStatus(t, response, http.StatusTooManyRequests)
	if retryAfter := response.Header.Get("Retry-After"); retryAfter != "900" {
		t.Fatalf("expected Retry-After 900, got %q", retryAfter)
	}
}
