package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func setupLogging(level, format string) {
	logLevel := parseLogLevel(level)
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" {
		zlog.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if logLevel <= zerolog.DebugLevel {
		zlog.Logger = zlog.Logger.With().Caller().Logger()
	}
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

func validLogLevels() []string {
	return []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}
}
