package config

import (
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		logrus.Warnf("invalid duration %s=%q, defaulting to %s", key, raw, fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		logrus.Warnf("invalid integer %s=%q, defaulting to %d", key, raw, fallback)
		return fallback
	}
	return n
}
