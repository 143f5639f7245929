// Package applog is a small logging sink consolidating the emulator's
// error-callback and "log once" policies behind the standard log
// package, so core subsystems don't import log directly.
package applog

import "log"

// Level names the severity of a logged event.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ErrorFunc matches the host's error callback shape.
type ErrorFunc func(err error)

var errorCallback ErrorFunc

// SetErrorCallback installs the host's error callback. Passing nil falls
// back to logging through the standard logger only.
func SetErrorCallback(fn ErrorFunc) {
	errorCallback = fn
}

// Logf logs a formatted message at the given level.
func Logf(level Level, format string, args ...interface{}) {
	log.Printf("["+level.String()+"] "+format, args...)
}

// Error reports err to the host callback if one is installed, and always
// logs it so an error is never silently dropped.
func Error(err error) {
	if err == nil {
		return
	}
	log.Printf("[ERROR] %v", err)
	if errorCallback != nil {
		errorCallback(err)
	}
}

// onceLogged tracks messages already emitted by LogOnce.
var onceLogged = make(map[string]bool)

// LogOnce logs a message the first time a given key is seen, and is a
// no-op on every subsequent call with that key — for conditions like an
// invalid opcode trap that would otherwise spam every cycle.
func LogOnce(key string, level Level, format string, args ...interface{}) {
	if onceLogged[key] {
		return
	}
	onceLogged[key] = true
	Logf(level, format, args...)
}
