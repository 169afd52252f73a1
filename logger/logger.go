// Package logger defines the structured logging interface used across
// restdb and adapters for the common logging backends.
package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"
)

// LogLevel log level
type LogLevel int

const (
	// Silent silent log level
	Silent LogLevel = iota + 1
	// Error error log level
	Error
	// Warn warn log level
	Warn
	// Info info log level
	Info
)

// Config logger config
type Config struct {
	// SlowThreshold flags generated statements whose execution took longer
	SlowThreshold time.Duration
	// LogLevel minimum level to emit
	LogLevel LogLevel
	// ParameterizedQueries suppresses literal values in traced SQL
	ParameterizedQueries bool
}

// Interface logger interface
type Interface interface {
	LogMode(LogLevel) Interface
	Info(ctx context.Context, msg string, data ...interface{})
	Warn(ctx context.Context, msg string, data ...interface{})
	Error(ctx context.Context, msg string, data ...interface{})
	// Trace logs one generated SQL statement with its execution outcome
	Trace(ctx context.Context, begin time.Time, fc func() (sql string, rows int64), err error)
}

// Writer log writer interface
type Writer interface {
	Printf(string, ...interface{})
}

// Default logger writing to stderr
var Default = New(log.New(os.Stderr, "\r\n", log.LstdFlags), Config{LogLevel: Warn})

// Discard logger that drops everything
var Discard = New(log.New(os.Stderr, "", 0), Config{LogLevel: Silent})

// New creates a plain text logger on top of any Writer
func New(writer Writer, config Config) Interface {
	return &logger{Writer: writer, Config: config}
}

type logger struct {
	Writer
	Config
}

// LogMode log mode
func (l *logger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

// Info print info
func (l *logger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.Printf("[info] "+msg, data...)
	}
}

// Warn print warn messages
func (l *logger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.Printf("[warn] "+msg, data...)
	}
}

// Error print error messages
func (l *logger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.Printf("[error] "+msg, data...)
	}
}

// Trace print sql message
func (l *logger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	switch {
	case err != nil && l.LogLevel >= Error:
		l.Printf("[error] %s | %s | %v", elapsedString(elapsed), sql, err)
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.LogLevel >= Warn:
		l.Printf("[warn] SLOW SQL >= %v | %s | %s | %d rows", l.SlowThreshold, elapsedString(elapsed), sql, rows)
	case l.LogLevel >= Info:
		l.Printf("[info] %s | %s | %d rows", elapsedString(elapsed), sql, rows)
	}
}

func elapsedString(elapsed time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(elapsed.Nanoseconds())/1e6)
}
