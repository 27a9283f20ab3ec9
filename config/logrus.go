package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	logg *logrus.Logger
)

func GetLogger() *logrus.Logger {
	return logg
}

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(logrus.InfoLevel)
	logg.SetOutput(os.Stdout)
}

func LogError(logger *logrus.Logger, moduleName string, funcName string, context string, data any, err error) {
	if data != nil {
		logger.WithFields(logrus.Fields{
			"module":   moduleName,
			"funcName": funcName,
			"context":  context,
			"data":     data,
		}).Error(err.Error())
	} else {
		logger.WithFields(logrus.Fields{
			"module":   moduleName,
			"funcName": funcName,
			"context":  context,
		}).Error(err.Error())
	}
}

// LogDataIntegrity records a malformed stored record that was excluded from an
// aggregation. These are surfaced as 500s to callers but logged under a
// dedicated field so they can be alerted on separately from upstream failures.
func LogDataIntegrity(logger *logrus.Logger, moduleName string, funcName string, data any, err error) {
	logger.WithFields(logrus.Fields{
		"module":         moduleName,
		"funcName":       funcName,
		"data_integrity": true,
		"data":           data,
	}).Error(err.Error())
}
