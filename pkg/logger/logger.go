package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// InitLogger initializes the structured logger with proper configuration
func InitLogger(logLevel string, isDevelopment bool) *logrus.Logger {
	return initLogger(logLevel, isDevelopment, os.Stdout)
}

func initLogger(logLevel string, isDevelopment bool, out io.Writer) *logrus.Logger {
	log := logrus.New()

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			if isDevelopment {
				logLevel = "debug"
			} else {
				logLevel = "info"
			}
		}
	}

	log.SetOutput(out)

	if level, err := logrus.ParseLevel(strings.ToLower(logLevel)); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", logLevel).Warn("Invalid LOG_LEVEL, using INFO")
	}

	if !isDevelopment || strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return log
}

// WithService creates a logger with service context
func WithService(log *logrus.Logger, serviceName string) *logrus.Entry {
	return log.WithField("service", serviceName)
}

// WithReportContext creates a logger scoped to one report
func WithReportContext(log *logrus.Logger, reportID, managerID string, gameweek int) *logrus.Entry {
	fields := logrus.Fields{
		"report_id": reportID,
		"gameweek":  gameweek,
	}
	if managerID != "" {
		fields["manager_id"] = managerID
	}
	return log.WithFields(fields)
}

// WithHTTPContext creates a logger with HTTP request context
func WithHTTPContext(log *logrus.Logger, requestID, method, path, userAgent string) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"request_id":      requestID,
		"http_method":     method,
		"http_path":       path,
		"http_user_agent": userAgent,
	})
}
