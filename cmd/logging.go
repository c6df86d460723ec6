package cmd

import (
	"fmt"
	"os"

	"github.com/vibast-solutions/ms-go-social/config"

	"github.com/sirupsen/logrus"
)

func configureLogging(cfg *config.Config) error {
	level := logrus.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		parsed, err := logrus.ParseLevel(raw)
		if err != nil {
			return fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
		}
		level = parsed
	}
	logrus.SetLevel(level)

	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return nil
}
