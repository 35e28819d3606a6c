package wander

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var loggerOnce sync.Once
var logger *log.Logger

func getLogger() *log.Logger {
	loggerOnce.Do(func() {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Prefix:          "wander",
		})
		logger.SetLevel(log.InfoLevel)
	})
	return logger
}

// SetLogLevel adjusts logger verbosity ("debug", "info", "warn",
// "error"). Unknown levels are ignored.
func SetLogLevel(level string) {
	if l, err := log.ParseLevel(level); err == nil {
		getLogger().SetLevel(l)
	}
}

func logDebugf(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func logInfof(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func logWarnf(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

func logErrorf(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}
