// Package logger exposes the process-wide structured logger shared by the
// HTTP handlers, the retention loop, and process bootstrap.
package logger

import (
	"sync"
)

// Textual level names accepted by Get.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the shared logger. The level only matters on the first call;
// every later call returns the instance built then.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(level)
	})
	return globalLogger
}
