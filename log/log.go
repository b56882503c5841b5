// Package log provides the structured logging infrastructure shared by every command.
//
// Records always go to stderr. When logs.write is enabled they are also appended to a
// size-rotated file under where.Logs().
package log

import (
	"io"
	"os"
	"path/filepath"

	"github.com/anisan-cli/bgmsync/constant"
	"github.com/anisan-cli/bgmsync/key"
	"github.com/anisan-cli/bgmsync/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Fields is an alias so callers do not import logrus for structured records.
type Fields = logrus.Fields

// Setup configures output, formatter and severity from the global configuration.
func Setup() error {
	var out io.Writer = os.Stderr

	if viper.GetBool(key.LogsWrite) {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   filepath.Join(where.Logs(), constant.App+".log"),
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     30,
		})
	}
	logrus.SetOutput(out)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	return nil
}

// WithFields starts a record carrying structured context, e.g. a request id.
func WithFields(fields Fields) *logrus.Entry {
	return logrus.WithFields(fields)
}

// Severity-specific emissions proxied to the standard logger.

func Error(args ...interface{}) {
	logrus.Error(args...)
}
func Errorf(format string, args ...interface{}) {
	logrus.Errorf(format, args...)
}
func Warn(args ...interface{}) {
	logrus.Warn(args...)
}
func Warnf(format string, args ...interface{}) {
	logrus.Warnf(format, args...)
}
func Info(args ...interface{}) {
	logrus.Info(args...)
}
func Infof(format string, args ...interface{}) {
	logrus.Infof(format, args...)
}
func Debug(args ...interface{}) {
	logrus.Debug(args...)
}
func Debugf(format string, args ...interface{}) {
	logrus.Debugf(format, args...)
}
