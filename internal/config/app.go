package config

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	Name            string
	Env             string
	Port            string
	BaseURL         string
	CORSOrigins     string
	ShutdownTimeout time.Duration
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := strings.ToLower(os.Getenv("APP_ENV"))
		if env == "" {
			env = "development"
			logrus.Warnf("APP_ENV not set, defaulting to %s", env)
		}
		appConfig = &AppConfig{
			Name:            getEnv("APP_NAME", "careers-api"),
			Env:             env,
			Port:            getEnv("APP_PORT", ":8080"),
			BaseURL:         strings.TrimRight(os.Getenv("APP_URL"), "/"),
			CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
