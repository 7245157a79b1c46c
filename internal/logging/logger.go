package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Fields map[string]interface{}

var logger = newLogger(os.Stderr)

func newLogger(w io.Writer) zerolog.Logger {
	zerolog.TimestampFieldName = "ts"
	zerolog.MessageFieldName = "msg"
	return zerolog.New(w).With().Timestamp().Logger()
}

// SetOutput redirects log lines to w. Call it before serving requests.
func SetOutput(w io.Writer) {
	lvl := logger.GetLevel()
	logger = newLogger(w).Level(lvl)
}

// SetLevel sets the minimum level ("debug", "info", "warn", "error").
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return err
	}
	logger = logger.Level(lvl)
	return nil
}

func emit(ev *zerolog.Event, msg string, err error, fields Fields) {
	if err != nil {
		ev = ev.Err(err)
	}
	if len(fields) > 0 {
		ev = ev.Fields(map[string]interface{}(fields))
	}
	ev.Msg(msg)
}

// Debug logs a debug message with optional fields.
func Debug(msg string, fields Fields) {
	emit(logger.Debug(), msg, nil, fields)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	emit(logger.Info(), msg, nil, fields)
}

// Warn logs a recoverable problem.
func Warn(msg string, err error, fields Fields) {
	emit(logger.Warn(), msg, err, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	emit(logger.Error(), msg, err, fields)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	emit(logger.WithLevel(zerolog.FatalLevel), msg, err, fields)
	os.Exit(1)
}
