// Package logger provides structured logging for the Souqna marketplace core.
//
// # Logger Interface
//
// The Logger interface defines the contract for all logging implementations:
//
//	type Logger interface {
//	    Debug(msg string, fields map[string]interface{})
//	    Info(msg string, fields map[string]interface{})
//	    Warn(msg string, fields map[string]interface{})
//	    Error(msg string, fields map[string]interface{})
//	    With(fields map[string]interface{}) Logger
//	}
//
// # Structured Logging
//
// All log methods accept structured fields for rich context:
//
//	logger.Info("Cart line added", map[string]interface{}{
//	    "session_id": "abc-123",
//	    "product_id": "p1",
//	    "quantity":   2,
//	})
//
// # Contextual Logging
//
// Create child loggers with persistent fields:
//
//	sessionLogger := logger.With(map[string]interface{}{
//	    "session_id": sessionID,
//	})
//
// # Configuration
//
// The minimum level is read from the LOG_LEVEL environment variable
// (debug, info, warn, error); it defaults to info.
package logger
