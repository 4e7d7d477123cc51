// Package repository wraps gorm access to the relational backend. Every
// method that participates in an engine operation takes the transaction
// handle explicitly; repositories never hold a connection of their own.
package repository

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
