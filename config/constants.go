package config

import (
	"os"
	"strconv"
	"time"
)

// Service constants with env var override support.
var (
	HTTPAddr          = stringEnv("HTTP_ADDR", ":9400")
	DBTimeout         = durationEnv("DB_TIMEOUT", 10*time.Second)
	ReadHeaderTimeout = durationEnv("READ_HEADER_TIMEOUT", 5*time.Second)
	ShutdownTimeout   = durationEnv("SHUTDOWN_TIMEOUT", 30*time.Second)
)

func stringEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func intEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func durationEnv(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
