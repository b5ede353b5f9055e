package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPassphraseMismatch = errors.New("passphrase mismatch")
	ErrLockDisabled       = errors.New("lock disabled")
)

// AuthService guards the tracker with a single optional passphrase. An empty
// hash disables the lock.
type AuthService struct {
	passphraseHash string
}

func NewAuthService(passphraseHash string) *AuthService {
	return &AuthService{passphraseHash: strings.TrimSpace(passphraseHash)}
}

func (service *AuthService) Enabled() bool {
	return service.passphraseHash != ""
}

func (service *AuthService) VerifyPassphrase(passphrase string) error {
	if !service.Enabled() {
		return ErrLockDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(service.passphraseHash), []byte(passphrase)) != nil {
		return ErrPassphraseMismatch
	}
	return nil
}

func HashPassphrase(passphrase string) (string, error) {
	if err := ValidatePassphraseStrength(passphrase); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
