// Package logger builds configured slog.Logger instances with a small set
// of options (level, format, output, static attributes) plus attribute
// helpers used across the forum services.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithJSONFormatter(),
//	    logger.WithLevel(slog.LevelInfo),
//	    logger.WithAttr(logger.Component("auth")),
//	)
package logger
