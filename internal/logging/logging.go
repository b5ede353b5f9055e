package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the process logger. Unknown levels fall back to info with a
// warning; format "json" selects the JSON formatter, anything else text.
func New(level string, format string, output io.Writer) *logrus.Logger {
	logger := logrus.New()
	if output == nil {
		output = os.Stdout
	}
	logger.SetOutput(output)

	if strings.ToLower(strings.TrimSpace(format)) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	parsedLevel, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
		logger.Warnf("invalid log level %q, defaulting to info", level)
		return logger
	}
	logger.SetLevel(parsedLevel)
	return logger
}
