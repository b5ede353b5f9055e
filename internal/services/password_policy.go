package services

import (
	"errors"
	"unicode"
)

const MinPassphraseLength = 10

var ErrWeakPassphrase = errors.New("weak passphrase")

func ValidatePassphraseStrength(passphrase string) error {
	if len([]rune(passphrase)) < MinPassphraseLength {
		return ErrWeakPassphrase
	}

	hasLetter := false
	hasDigit := false
	for _, char := range passphrase {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	if hasLetter && hasDigit {
		return nil
	}
	return ErrWeakPassphrase
}
