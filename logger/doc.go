// Package logger provides structured JSON logging for the talent matching
// service, backed by Uber's Zap.
//
// The Logger wrapper exposes a small API taking a message, an optional
// error, and optional field maps:
//
//	log := logger.NewLoggerClient(logger.NewConfig())
//	log.Info("model loaded", nil, map[string]interface{}{"version": runID})
//
// An Fx module (FXModule) provides the logger to the dependency graph and
// flushes it on shutdown.
package logger
