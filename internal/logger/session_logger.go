package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger is a file logger for a configuration session: wizard
// transitions, verification attempts, and deployments.
type Logger struct {
	sessionID string
	logFile   *os.File
	logger    *log.Logger
	mu        sync.Mutex
	logDir    string
}

// LogLevel represents different types of log entries
type LogLevel string

const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARN"
	LogLevelError   LogLevel = "ERROR"
	LogLevelDeploy  LogLevel = "DEPLOY"
	LogLevelWizard  LogLevel = "WIZARD"
)

// NewLogger creates a file logger for the given session.
func NewLogger(sessionID string) (*Logger, error) {
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("session_%s_%s.log", sessionID, timestamp)
	logPath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &Logger{
		sessionID: sessionID,
		logFile:   file,
		logger:    log.New(file, "", 0),
		logDir:    logDir,
	}

	l.writeSessionHeader()
	return l, nil
}

func (l *Logger) writeSessionHeader() {
	l.mu.Lock()
	defer l.mu.Unlock()

	header := fmt.Sprintf(`
================================================================================
CONFIGURATION SESSION STARTED
================================================================================
Session: %s
Started: %s
================================================================================
`, l.sessionID, time.Now().Format("2006-01-02 15:04:05"))

	l.logger.Print(header)
}

// Log writes a formatted log entry with the specified level
func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	l.logger.Println(fmt.Sprintf("[%s] [%s] %s", timestamp, level, message))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(LogLevelInfo, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(LogLevelWarning, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(LogLevelError, format, args...)
}

// Wizard logs a wizard state transition
func (l *Logger) Wizard(format string, args ...interface{}) {
	l.Log(LogLevelWizard, format, args...)
}

// LogStepTransition logs a main-step move
func (l *Logger) LogStepTransition(from, to int) {
	l.Wizard("Step transition: %d -> %d", from, to)
}

// LogVerification logs a credential verification outcome
func (l *Logger) LogVerification(broker string, balance float64, err error) {
	if err != nil {
		l.Error("Credential verification failed for %s: %v", broker, err)
		return
	}
	l.Info("Credentials verified for %s, balance: $%.2f", broker, balance)
}

// LogDeployment logs a completed deployment
func (l *Logger) LogDeployment(identifier, botName, botType, asset string, amount float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	entry := fmt.Sprintf(`
[%s] [DEPLOY] ==================== BOT DEPLOYED ====================
Identifier: %s
Name: %s | Type: %s
Asset: %s | Amount: $%.2f
=============================================================`,
		timestamp, identifier, botName, botType, asset, amount)

	l.logger.Println(entry)
}

// LogError logs error with context
func (l *Logger) LogError(context string, err error) {
	l.Error("%s: %v", context, err)
}

// Close closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile != nil {
		footer := fmt.Sprintf(`
================================================================================
CONFIGURATION SESSION ENDED
================================================================================
Ended: %s
================================================================================

`, time.Now().Format("2006-01-02 15:04:05"))
		l.logger.Print(footer)

		return l.logFile.Close()
	}
	return nil
}
