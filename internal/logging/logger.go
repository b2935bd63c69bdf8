// Package logging provides structured, colorful logging utilities for the
// wavemode daemon and CLI, ensuring consistent log formatting across the
// orchestrator, the HTTP surface, and the OS signal monitor.
//
// Implements a unified logging interface that standardizes log output from the
// daemon, CLI tools, and integrated third-party libraries (Gin). Uses
// color-coded log levels and consistent timestamp formatting to improve
// operational visibility and debugging efficiency.
//
// LOGGING FEATURES:
//   - Color-coded levels: DEBUG (purple), INFO (blue), WARN (yellow), ERROR (red), SUCCESS (green)
//   - Log interception: Reformats Gin library logs through LevelWriter adapters
//   - Flexible output: Configurable log levels and output suppression for CLI tools
//   - File logging: Size-based rotation via lumberjack for long-running daemons
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Logger for INFO/SUCCESS messages (stdout by default, follows Unix conventions)
	stdoutLogger = log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})

	// Logger for WARN/ERROR/DEBUG messages (stderr by default, follows Unix conventions)
	stderrLogger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})

	// Track if logging has been explicitly configured by CLI tools
	cliConfigured = false

	// Rotating file sink when file logging is enabled; nil otherwise
	logFileSink *lumberjack.Logger
)

// setupCustomStyles configures custom color schemes for log levels to improve
// visual distinction while monitoring mode transitions and manager lifecycles.
//
// Provides carefully chosen colors that work well in both light and dark
// terminals while maintaining readability for production logging.
func setupCustomStyles() *log.Styles {
	styles := log.DefaultStyles()

	// DEBUG: light purple
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Foreground(lipgloss.Color("#7F6DFF"))

	// INFO: light blue
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Foreground(lipgloss.Color("#42E7FF"))

	// WARN: light yellow
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color("#FFE763"))

	// ERROR: light red/pink
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Foreground(lipgloss.Color("#FF4473"))

	return styles
}

// init sets up custom color styling on package initialization for consistent
// visual formatting across all wavemode logging output.
func init() {
	styles := setupCustomStyles()
	stdoutLogger.SetStyles(styles)
	stderrLogger.SetStyles(styles)
}

// Info logs informational messages for mode transitions and status updates.
// Uses stdout following Unix conventions (or log file when configured).
func Info(format string, v ...any) {
	stdoutLogger.Info(fmt.Sprintf(format, v...))
}

// Warn logs warning messages for non-critical issues requiring attention.
// Uses stderr following Unix conventions (or log file when configured).
func Warn(format string, v ...any) {
	stderrLogger.Warn(fmt.Sprintf(format, v...))
}

// Error logs error messages for failures and critical issues.
// Uses stderr following Unix conventions (or log file when configured).
func Error(format string, v ...any) {
	stderrLogger.Error(fmt.Sprintf(format, v...))
}

// Debug logs detailed debugging information for development and troubleshooting.
// Uses stderr following Unix conventions (or log file when configured).
func Debug(format string, v ...any) {
	stderrLogger.Debug(fmt.Sprintf(format, v...))
}

// Success logs successful operations in green using INFO level with custom styling.
// Implements a custom SUCCESS level that respects INFO level filtering.
func Success(format string, v ...any) {
	if stdoutLogger.GetLevel() > log.InfoLevel {
		return // Skip if INFO level is suppressed
	}

	var out io.Writer = os.Stdout
	if logFileSink != nil {
		out = logFileSink
	}

	// Temporary logger overriding the INFO label with "SUCCESS" in light green
	styles := setupCustomStyles()
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("SUCCESS").
		Foreground(lipgloss.Color("#60F281"))

	tempLogger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	tempLogger.SetStyles(styles)
	tempLogger.Info(fmt.Sprintf(format, v...))
}

// SetLevel configures the minimum logging level for filtering log output
// across all wavemode components. Accepts standard level strings
// (DEBUG, INFO, WARN, ERROR) and applies filtering to reduce noise during
// production operations or increase verbosity for troubleshooting.
func SetLevel(level string) {
	var logLevel log.Level
	switch level {
	case "DEBUG":
		logLevel = log.DebugLevel
	case "INFO":
		logLevel = log.InfoLevel
	case "WARN":
		logLevel = log.WarnLevel
	case "ERROR":
		logLevel = log.ErrorLevel
	default:
		logLevel = log.InfoLevel
	}

	stdoutLogger.SetLevel(logLevel)
	stderrLogger.SetLevel(logLevel)
}

// SetLogFile routes all log output to a rotating file, overriding the Unix
// stdout/stderr separation. Rotation keeps long-running daemons from filling
// the disk: files rotate at maxSizeMB and up to maxBackups old files are kept.
//
// Used by the daemon when a log file path is configured; interactive runs and
// CLI tools keep the default stdout/stderr destinations.
func SetLogFile(path string, maxSizeMB, maxBackups int) {
	logFileSink = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   true,
	}

	stdoutLogger = log.NewWithOptions(logFileSink, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	stderrLogger = log.NewWithOptions(logFileSink, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})

	styles := setupCustomStyles()
	stdoutLogger.SetStyles(styles)
	stderrLogger.SetStyles(styles)
}

// SuppressOutput disables INFO/WARN/DEBUG logs while keeping ERROR logs visible.
// Used by CLI tools to reduce output noise during normal operations.
func SuppressOutput() {
	stdoutLogger.SetLevel(log.ErrorLevel)
	stderrLogger.SetLevel(log.ErrorLevel)
	cliConfigured = true
}

// RestoreOutput restores normal logging with Unix conventions at INFO level.
// Recreates both loggers with default destinations and custom color styling.
func RestoreOutput() {
	logFileSink = nil

	stdoutLogger = log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	stderrLogger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})

	styles := setupCustomStyles()
	stdoutLogger.SetStyles(styles)
	stderrLogger.SetStyles(styles)

	stdoutLogger.SetLevel(log.InfoLevel)
	stderrLogger.SetLevel(log.InfoLevel)
	cliConfigured = true
}

// IsConfiguredByCLI returns true if logging has been explicitly configured by CLI tools.
func IsConfiguredByCLI() bool {
	return cliConfigured
}

// MarkConfiguredByCLI records that a CLI tool has taken ownership of logging
// configuration so library integrations don't reconfigure it underneath.
func MarkConfiguredByCLI() {
	cliConfigured = true
}

// LevelWriter adapts our leveled logging functions to the io.Writer interface
// expected by third-party libraries (Gin's DefaultWriter, standard library log).
type LevelWriter struct {
	level  string
	prefix string
}

// NewLevelWriter creates an io.Writer that logs every line at the given level
// with an optional component prefix.
func NewLevelWriter(level, prefix string) io.Writer {
	return &LevelWriter{level: strings.ToUpper(level), prefix: prefix}
}

// Write implements io.Writer by splitting input into lines and logging each
// at the configured level.
func (w *LevelWriter) Write(p []byte) (int, error) {
	lines := strings.Split(string(p), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		msg := line
		if w.prefix != "" {
			msg = w.prefix + ": " + line
		}
		switch w.level {
		case "DEBUG":
			Debug("%s", msg)
		case "WARN":
			Warn("%s", msg)
		case "ERROR":
			Error("%s", msg)
		default:
			Info("%s", msg)
		}
	}
	return len(p), nil
}
