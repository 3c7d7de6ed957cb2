package config

import (
	"os"
	"strings"
)

// ServiceAuthSecret returns the HMAC secret for service-to-service
// auth on mutating routes. Empty means auth is disabled.
func ServiceAuthSecret() string {
	return getEnvOrDefault("SERVICE_AUTH_SECRET", "")
}

func getEnvOrDefault(key, defaultValue string) string {
	// Support _FILE suffix for Docker Secrets
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
