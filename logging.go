package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func setupLogging(format string, level string) {
	logrus.SetOutput(os.Stdout)

	switch format {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.WithError(err).WithField("level", level).Warn("Unknown log level, falling back to info")
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}
