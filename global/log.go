// Package global holds process-wide handles assigned once during
// bootstrap and read everywhere else.
package global

import "go.uber.org/zap"

// Logger is set by the server bootstrap before any request is served.
var Logger *zap.Logger

// Log returns the process logger.
func Log() *zap.Logger {
	return Logger
}
