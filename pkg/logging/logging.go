// Package logging provides the leveled, named loggers used across the
// module. Output goes through the standard log writer with a fixed
// "LEVEL | name | message" layout so multi-component logs stay scannable.
package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Level filters which messages a logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a configuration string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s (must be one of debug, info, warn, error)", s)
	}
}

// Logger is a named, leveled logger.
type Logger struct {
	name   string
	level  Level
	logger *log.Logger
}

// New creates a logger for the given component name at info level.
func New(name string) *Logger {
	return &Logger{
		name:   name,
		level:  LevelInfo,
		logger: log.New(os.Stdout, "", log.Ldate|log.Ltime),
	}
}

// WithLevel returns a copy of the logger with the given level.
func (l *Logger) WithLevel(level Level) *Logger {
	out := *l
	out.level = level
	return &out
}

// SetLevel changes the logger level in place.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.level <= LevelDebug {
		l.log("DEBUG", format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	if l.level <= LevelInfo {
		l.log("INFO", format, args...)
	}
}

func (l *Logger) Warnf(format string, args ...any) {
	if l.level <= LevelWarn {
		l.log("WARN", format, args...)
	}
}

func (l *Logger) Errorf(format string, args ...any) {
	if l.level <= LevelError {
		l.log("ERROR", format, args...)
	}
}

func (l *Logger) log(levelStr, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%-5s | %-15s | %s", levelStr, l.name, message)
}
