package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// "Service" groups this app's secrets in the OS keychain.
	KeyringService = "vagasboard"

	operatorAccount = "operator-token"
	operatorEnv     = "VAGAS_OPERATOR_TOKEN"
)

// GetOperatorToken returns the token that gates operator endpoints
// (cache clear, config edits, error detail). Keychain first, env fallback
// for headless installs.
func GetOperatorToken() (string, error) {
	pw, err := keyring.Get(KeyringService, operatorAccount)
	if err == nil && strings.TrimSpace(pw) != "" {
		return pw, nil
	}

	if v := strings.TrimSpace(os.Getenv(operatorEnv)); v != "" {
		return v, nil
	}

	return "", errors.New("operator token not found (set it in keychain or via " + operatorEnv + ")")
}

func SetOperatorToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, operatorAccount, token)
}

func DeleteOperatorToken() error {
	return keyring.Delete(KeyringService, operatorAccount)
}
