package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// apiKeyBytes yields a 40 character hex key.
const apiKeyBytes = 20

// GenerateAPIKey returns a new random client API key.
func GenerateAPIKey() (string, error) {
	buf := make([]byte, apiKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
