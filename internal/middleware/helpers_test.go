package middleware_test

import (
	"io"

	"artisan-marketplace-backend/internal/logging"
	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	return logging.NewWithOutput(io.Discard, "debug", false)
}
