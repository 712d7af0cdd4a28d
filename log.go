package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// setupLog routes logging to the file named by UTTER_LOGFILE. Without it
// logging is discarded: the TUI owns the terminal.
func setupLog() (func() error, error) {
	logFile := os.Getenv("UTTER_LOGFILE")
	if logFile == "" {
		log.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}
	f, err := tea.LogToFileWith(logFile, "utter", log.Default())
	if err != nil {
		return nil, fmt.Errorf("error setting up log: %w", err)
	}
	log.SetLevel(log.DebugLevel)
	return f.Close, nil
}

// setupDebugLogFile installs a file logger under ~/.utter when --debug is
// given without an explicit UTTER_LOGFILE.
func setupDebugLogFile() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	logDir := filepath.Join(home, ".utter")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	log.SetDefault(log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           log.DebugLevel,
	}))
	log.Debug("debug log file created", "path", logPath)
	return nil
}
