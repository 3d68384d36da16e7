package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger handles dual-output logging (console + file). The file always
// receives everything; the console only sees minLevel and above, so the
// per-row inference chatter stays out of normal runs.
type Logger struct {
	consoleLogger *log.Logger
	fileLogger    *log.Logger
	logFile       *os.File
	verbose       bool
	minLevel      Level
}

var globalLogger *Logger

// Init initializes the global logger.
// consoleOutput: where INFO and above are written (typically os.Stdout)
// logFilePath: path to the log file receiving all levels
// verbose: if true, DEBUG shows on console as well
func Init(consoleOutput io.Writer, logFilePath string, verbose bool) error {
	logDir := filepath.Dir(logFilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	minLevel := LevelInfo
	if verbose {
		minLevel = LevelDebug
	}

	globalLogger = &Logger{
		consoleLogger: log.New(consoleOutput, "", 0), // No prefix for clean console output
		fileLogger:    log.New(logFile, "", log.LstdFlags),
		logFile:       logFile,
		verbose:       verbose,
		minLevel:      minLevel,
	}

	return nil
}

// Close closes the log file
func Close() {
	if globalLogger != nil && globalLogger.logFile != nil {
		globalLogger.logFile.Close()
	}
}

// Debug logs a debug message (file only, unless verbose)
func Debug(format string, args ...interface{}) {
	if globalLogger == nil {
		return
	}
	globalLogger.log(LevelDebug, format, args...)
}

// Info logs an info message (console + file)
func Info(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	globalLogger.log(LevelInfo, format, args...)
}

// Warn logs a warning message (console + file)
func Warn(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Printf("WARN: "+format+"\n", args...)
		return
	}
	globalLogger.log(LevelWarn, format, args...)
}

// Error logs an error message (console + file)
func Error(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Printf("ERROR: "+format+"\n", args...)
		return
	}
	globalLogger.log(LevelError, format, args...)
}

// log handles the actual logging logic
func (l *Logger) log(level Level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Always log to file with timestamp and level (regardless of minLevel)
	l.fileLogger.Printf("[%s] %s", level.String(), message)

	if level < l.minLevel {
		return
	}

	switch level {
	case LevelDebug:
		if l.verbose {
			l.consoleLogger.Printf("[DEBUG] %s", message)
		}
	case LevelInfo:
		l.consoleLogger.Printf("%s", message) // Clean output for INFO
	case LevelWarn:
		l.consoleLogger.Printf("⚠️  %s", message)
	case LevelError:
		l.consoleLogger.Printf("❌ %s", message)
	}
}

// InfoClean logs an info message without any prefix (console only).
// Useful for progress updates that shouldn't go to the log file.
func InfoClean(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	globalLogger.consoleLogger.Printf(format, args...)
}

// IsVerbose returns whether verbose logging is enabled
func IsVerbose() bool {
	if globalLogger == nil {
		return false
	}
	return globalLogger.verbose
}
