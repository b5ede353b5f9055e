package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/flare/internal/security"
	"github.com/terraincognita07/flare/internal/services"
)

const (
	generatedPassphraseLength = 16
	maxGenerateAttempts       = 32
)

var ErrPassphraseMismatch = errors.New("passphrases do not match")

// PassphraseOptions configures RunPassphraseCommand. Stdin must be a terminal
// unless Generate is set.
type PassphraseOptions struct {
	Generate bool
	Stdin    *os.File
	Stdout   io.Writer
}

// RunPassphraseCommand prints a bcrypt hash suitable for PASSPHRASE_HASH.
func RunPassphraseCommand(options PassphraseOptions) error {
	stdout := options.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	var passphrase string
	if options.Generate {
		generated, err := generatePassphrase(generatedPassphraseLength)
		if err != nil {
			return fmt.Errorf("generate passphrase: %w", err)
		}
		passphrase = generated
	} else {
		prompted, err := promptNewPassphrase(options.Stdin, stdout)
		if err != nil {
			return err
		}
		passphrase = prompted
	}

	hash, err := services.HashPassphrase(passphrase)
	if err != nil {
		if errors.Is(err, services.ErrWeakPassphrase) {
			return fmt.Errorf("passphrase needs at least %d characters with letters and digits: %w", services.MinPassphraseLength, err)
		}
		return fmt.Errorf("hash passphrase: %w", err)
	}

	if options.Generate {
		fmt.Fprintf(stdout, "Passphrase: %s\n", passphrase)
	}
	fmt.Fprintf(stdout, "PASSPHRASE_HASH='%s'\n", hash)
	return nil
}

func promptNewPassphrase(stdin *os.File, stdout io.Writer) (string, error) {
	if stdin == nil {
		stdin = os.Stdin
	}

	fmt.Fprint(stdout, "New passphrase: ")
	first, err := readPassphraseNoEcho(stdin)
	fmt.Fprintln(stdout)
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}

	fmt.Fprint(stdout, "Repeat passphrase: ")
	second, err := readPassphraseNoEcho(stdin)
	fmt.Fprintln(stdout)
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}

	if string(first) != string(second) {
		return "", ErrPassphraseMismatch
	}
	return string(first), nil
}

// generatePassphrase draws random strings until one passes the strength
// policy.
func generatePassphrase(length int) (string, error) {
	if length < services.MinPassphraseLength {
		length = services.MinPassphraseLength
	}

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		candidate, err := security.RandomString(length, security.PassphraseAlphabet)
		if err != nil {
			return "", err
		}
		if services.ValidatePassphraseStrength(candidate) == nil {
			return candidate, nil
		}
	}
	return "", services.ErrWeakPassphrase
}
