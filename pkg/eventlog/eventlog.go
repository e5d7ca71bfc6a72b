package eventlog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Sink receives one self-contained summary line per recorded mutation.
// Consumers tail the stream for monitoring without touching the relational
// store. Implementations must be safe to call from any goroutine.
type Sink interface {
	Write(category, severity, message string, details map[string]interface{})
}

// FileSink appends JSON lines (timestamp, category, severity, message,
// details) to a file via logrus.
type FileSink struct {
	log  *logrus.Logger
	file *os.File
}

// NewFileSink opens (or creates) the append-only event log at path.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(f)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)

	return &FileSink{log: log, file: f}, nil
}

func (s *FileSink) Write(category, severity, message string, details map[string]interface{}) {
	entry := s.log.WithField("category", category)
	if len(details) > 0 {
		entry = entry.WithField("details", details)
	}

	switch severity {
	case "error":
		entry.Error(message)
	case "warning":
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}

func (s *FileSink) Close() error {
	return s.file.Close()
}

// NopSink discards everything. Used in tests and by the reset CLI.
type NopSink struct{}

func (NopSink) Write(string, string, string, map[string]interface{}) {}
