// Package logger provides a structured logging interface for mediawall.
//
// It wraps the zerolog library to provide a clean API with support for:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured logging with fields
// - Pretty console output with colors
// - File output, required while the TUI owns the terminal
// - Global logger instance for easy access
//
// Basic Usage:
//
//	import "mediawall/pkg/logger"
//
//	cfg := &config.LoggingConfig{
//	    Level: "info",
//	    File:  "mediawall.log",
//	}
//	err := logger.Initialize(cfg)
//
//	logger.Info("viewer started")
//	logger.WithField("filename", "clip.mp4").Info("item loaded")
//	logger.WithError(err).Error("catalog fetch failed")
package logger
