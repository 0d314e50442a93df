// Package logging provides the shared logrus logger. Diagnostics go to
// stderr so stdout stays reserved for formatted results.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var L = logrus.New()

func init() {
	L.SetOutput(os.Stderr)
	L.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	L.SetLevel(logrus.InfoLevel)
}

// SetLevel parses and applies a level string; unknown levels keep the
// current level and emit a warning.
func SetLevel(levelStr string) {
	if levelStr == "" {
		return
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		L.WithField("level", levelStr).Warn("unknown log level, keeping current level")
		return
	}
	L.SetLevel(level)
}
