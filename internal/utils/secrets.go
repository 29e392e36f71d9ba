package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSecret generates a cryptographically secure random hex secret of n bytes
func GenerateSecret(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// EnvSecret is one generated .env entry
type EnvSecret struct {
	Key   string
	Value string
}

// GenerateEnvSecrets produces fresh values for every secret the server reads
// from the environment. Access and refresh keys are always distinct.
func GenerateEnvSecrets() ([]EnvSecret, error) {
	keys := []string{"JWT_SECRET", "JWT_REFRESH_SECRET"}
	out := make([]EnvSecret, 0, len(keys))
	seen := map[string]bool{}
	for _, key := range keys {
		value, err := GenerateSecret(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", key, err)
		}
		if seen[value] {
			return nil, fmt.Errorf("generated duplicate secret for %s", key)
		}
		seen[value] = true
		out = append(out, EnvSecret{Key: key, Value: value})
	}
	return out, nil
}
