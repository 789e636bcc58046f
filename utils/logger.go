package utils

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// InfoLogger writes request and lifecycle logs to stdout; ErrorLogger
// writes failures to stderr. Both are set by InitLogger.
var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(level)
	return l
}

func InitLogger() {
	InfoLogger = newLogger(os.Stdout, logrus.InfoLevel)
	ErrorLogger = newLogger(os.Stderr, logrus.ErrorLevel)
}

// SetLogLevel changes the info logger's level, e.g. "debug" or "warn".
// Unknown names leave the level untouched.
func SetLogLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		ErrorLogger.WithFields(logrus.Fields{"level": name}).Error("Unknown log level, keeping default")
		return
	}
	InfoLogger.SetLevel(level)
}
