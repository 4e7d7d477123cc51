// Package service holds the engines. Every mutating operation runs inside a
// single transaction: assertions, rule resolution and writes share one
// handle, and any error rolls the whole operation back before it surfaces.
package service

import (
	"github.com/sirupsen/logrus"
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return logger
}
