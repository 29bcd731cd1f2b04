package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var logFile *os.File

// Init redirects the global logger to a file. An empty path leaves logging
// on stderr. Call Close before exiting.
func Init(logFilePath string) error {
	if logFilePath == "" {
		return nil
	}

	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)

	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logFilePath, err)
	}

	Close()

	logFile = file
	Redirect(file)
	log.Info("logging initialized", "path", logFilePath)

	return nil
}

// Redirect sends the global logger to w with timestamps and plain text, so the
// output stays readable outside a terminal.
func Redirect(w io.Writer) {
	log.SetOutput(w)
	log.SetReportTimestamp(true)
	log.SetTimeFormat("2006-01-02 15:04:05.000000")
	log.SetFormatter(log.LogfmtFormatter)
}

// Close releases the log file opened by Init and restores stderr.
func Close() {
	if logFile == nil {
		return
	}

	log.SetOutput(os.Stderr)
	log.SetFormatter(log.TextFormatter)
	logFile.Close()
	logFile = nil
}
