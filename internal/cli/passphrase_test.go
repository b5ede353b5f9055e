package cli

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/terraincognita07/flare/internal/security"
	"github.com/terraincognita07/flare/internal/services"
)

func TestGeneratePassphraseMinimumLength(t *testing.T) {
	t.Parallel()

	passphrase, err := generatePassphrase(4)
	if err != nil {
		t.Fatalf("generatePassphrase returned error: %v", err)
	}
	if len(passphrase) != services.MinPassphraseLength {
		t.Fatalf("generatePassphrase minimum len = %d, want %d", len(passphrase), services.MinPassphraseLength)
	}
}

func TestGeneratePassphrasePassesPolicy(t *testing.T) {
	t.Parallel()

	passphrase, err := generatePassphrase(24)
	if err != nil {
		t.Fatalf("generatePassphrase returned error: %v", err)
	}
	if len(passphrase) != 24 {
		t.Fatalf("generatePassphrase len = %d, want 24", len(passphrase))
	}
	if err := services.ValidatePassphraseStrength(passphrase); err != nil {
		t.Fatalf("generated passphrase %q fails policy: %v", passphrase, err)
	}
	for _, char := range passphrase {
		if !strings.ContainsRune(security.PassphraseAlphabet, char) {
			t.Fatalf("passphrase %q contains char %q outside alphabet", passphrase, char)
		}
	}
}

func TestRunPassphraseCommandGenerate(t *testing.T) {
	t.Parallel()

	var output bytes.Buffer
	if err := RunPassphraseCommand(PassphraseOptions{Generate: true, Stdout: &output}); err != nil {
		t.Fatalf("RunPassphraseCommand returned error: %v", err)
	}

	matches := regexp.MustCompile(`(?m)^Passphrase: (\S+)\nPASSPHRASE_HASH='(\S+)'$`).FindStringSubmatch(output.String())
	if len(matches) != 3 {
		t.Fatalf("unexpected output %q", output.String())
	}
	if err := services.NewAuthService(matches[2]).VerifyPassphrase(matches[1]); err != nil {
		t.Fatalf("printed hash does not verify printed passphrase: %v", err)
	}
}
