package pkg

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Component identifies a subsystem for log filtering.
type Component string

// HAL component identifiers.
const (
	ComponentOSAL         Component = "osal"
	ComponentWorkQueue    Component = "workqueue"
	ComponentMixer        Component = "mixer"
	ComponentIPC          Component = "ipc"
	ComponentProvisioning Component = "provisioning"
	ComponentCrash        Component = "crash"
	ComponentHAL          Component = "hal"
	ComponentAudio        Component = "audio"
	ComponentDisplay      Component = "display"
	ComponentInput        Component = "input"
	ComponentSensor       Component = "sensor"
)

var (
	// DefaultLogger is the default logger used across the HAL.
	DefaultLogger *log.Logger

	// logMutex protects logger configuration.
	logMutex sync.RWMutex
)

func init() {
	DefaultLogger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.WarnLevel,
		ReportTimestamp: true,
	})
}

// SetLogLevel sets the minimum log level for all HAL logging.
func SetLogLevel(level log.Level) {
	logMutex.Lock()
	defer logMutex.Unlock()
	DefaultLogger.SetLevel(level)
}

// GetLogLevel returns the current minimum log level.
func GetLogLevel() log.Level {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return DefaultLogger.GetLevel()
}

// SetLogger replaces the default logger with a custom logger.
func SetLogger(logger *log.Logger) {
	logMutex.Lock()
	defer logMutex.Unlock()
	DefaultLogger = logger
}

// NewLogger creates a new logger writing to the given writer, inheriting
// the current default level.
func NewLogger(w io.Writer) *log.Logger {
	logMutex.RLock()
	level := DefaultLogger.GetLevel()
	logMutex.RUnlock()
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

func componentLogger(component Component) *log.Logger {
	logMutex.RLock()
	defer logMutex.RUnlock()
	return DefaultLogger.With("component", string(component))
}

// LogDebug logs a debug message with the given component.
func LogDebug(component Component, msg string, kv ...any) {
	componentLogger(component).Debug(msg, kv...)
}

// LogInfo logs an info message with the given component.
func LogInfo(component Component, msg string, kv ...any) {
	componentLogger(component).Info(msg, kv...)
}

// LogWarn logs a warning message with the given component.
func LogWarn(component Component, msg string, kv ...any) {
	componentLogger(component).Warn(msg, kv...)
}

// LogError logs an error message with the given component.
func LogError(component Component, msg string, kv ...any) {
	componentLogger(component).Error(msg, kv...)
}
