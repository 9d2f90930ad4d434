package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// ConfigureLogger sets the process-wide logrus formatter and level for env.
func ConfigureLogger(app *AppConfig) {
	logrus.SetOutput(os.Stdout)
	if app.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.DebugLevel)
}
