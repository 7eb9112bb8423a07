// Package log provides structured logging for the application on top of logrus.
//
// Entries go to stderr and, when enabled, to a daily file under where.Logs().
// Every entry carries the identifier of the current run.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jofsarpur/jofsarpur/filesystem"
	"github.com/jofsarpur/jofsarpur/where"
	logrus "github.com/sirupsen/logrus"
)

// Fields is a set of structured key/value pairs attached to an entry.
type Fields = logrus.Fields

// Options selects how the subsystem emits entries.
type Options struct {
	// Level is one of panic, fatal, error, warn, info, debug, trace.
	Level string
	// JSON switches the formatter to JSON.
	JSON bool
	// Write additionally appends entries to a daily log file.
	Write bool
}

var (
	logger = logrus.New()
	entry  = logrus.NewEntry(logger)
	runID  string
)

// Setup configures output, formatting and severity, and tags all further entries with a fresh run id.
func Setup(opts Options) error {
	var out io.Writer = os.Stderr

	if opts.Write {
		f, err := openLogFile()
		if err != nil {
			return err
		}
		out = io.MultiWriter(os.Stderr, f)
	}
	logger.SetOutput(out)

	if opts.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.TimeOnly})
	}

	parsed, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	runID = uuid.NewString()
	entry = logrus.NewEntry(logger).WithField("run", runID)
	return nil
}

// RunID returns the identifier attached to entries since the last Setup.
func RunID() string {
	return runID
}

func openLogFile() (io.Writer, error) {
	path := filepath.Join(where.Logs(), fmt.Sprintf("%s.log", time.Now().Format(time.DateOnly)))

	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// WithFields returns an entry carrying the given fields in addition to the run id.
func WithFields(fields Fields) *logrus.Entry {
	return entry.WithFields(fields)
}

// SetOutput redirects entries, typically to a buffer in tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func Error(args ...interface{}) {
	entry.Error(args...)
}
func Errorf(format string, args ...interface{}) {
	entry.Errorf(format, args...)
}
func Warn(args ...interface{}) {
	entry.Warn(args...)
}
func Warnf(format string, args ...interface{}) {
	entry.Warnf(format, args...)
}
func Info(args ...interface{}) {
	entry.Info(args...)
}
func Infof(format string, args ...interface{}) {
	entry.Infof(format, args...)
}
func Debug(args ...interface{}) {
	entry.Debug(args...)
}
func Debugf(format string, args ...interface{}) {
	entry.Debugf(format, args...)
}
