// Package logging configures the shared logrus logger the migration CLI
// and every package under it write through.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Configure sets the standard logger's level, output destination, and
// formatter. An empty logFile keeps logging on stderr with a human
// readable formatter; a non-empty path switches to JSON lines, the shape
// log-shipping tools expect.
func Configure(level logrus.Level, logFile string) error {
	logrus.SetLevel(level)

	var out io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		out = f
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:          true,
			DisableLevelTruncation: true,
		})
	}
	logrus.SetOutput(out)
	return nil
}
