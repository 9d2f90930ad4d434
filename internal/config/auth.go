package config

import (
	"os"
	"sync"
	"time"
)

type AuthConfig struct {
	SessionTTL    time.Duration
	AdminEmail    string
	AdminPassword string
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		authConfig = &AuthConfig{
			SessionTTL:    getDuration("SESSION_TTL", 24*time.Hour),
			AdminEmail:    os.Getenv("ADMIN_EMAIL"),
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		}
	})
	return authConfig
}
