package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that writes to a file
func NewFileLogger(path string) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})

	cleanup := func() {
		f.Close()
	}

	return &Logger{Logger: l}, cleanup, nil
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(writers ...io.Writer) *Logger {
	w := io.MultiWriter(writers...)
	return New(w)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// FetchStarted logs the start of a feed fetch round
func (l *Logger) FetchStarted(requestID string, sources int) {
	l.Info("fetch started",
		"request_id", requestID,
		"sources", sources)
}

// FetchCompleted logs the end of a feed fetch round
func (l *Logger) FetchCompleted(requestID string, fetched, failed int, duration time.Duration) {
	l.Info("fetch completed",
		"request_id", requestID,
		"fetched", fetched,
		"failed", failed,
		"duration", duration.Round(time.Millisecond))
}

// FetchFailed logs a failed source fetch
func (l *Logger) FetchFailed(requestID, url string, err error) {
	l.Warn("fetch failed",
		"request_id", requestID,
		"url", url,
		"error", err)
}

// SourceParsed logs a successfully fetched and parsed source
func (l *Logger) SourceParsed(requestID, url string, posts int) {
	l.Debug("source parsed",
		"request_id", requestID,
		"url", url,
		"posts", posts)
}

// FeedAssembled logs the size of the merged timeline
func (l *Logger) FeedAssembled(posts, sources int) {
	l.Info("feed assembled",
		"posts", posts,
		"sources", sources)
}

// PostSaved logs a post appended to the user's feed file
func (l *Logger) PostSaved(path, id string) {
	l.Info("post saved",
		"path", path,
		"id", id)
}

// StateError logs a state-related error
func (l *Logger) StateError(operation string, err error) {
	l.Error("state error",
		"operation", operation,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(path string) {
	l.Debug("config loaded", "path", path)
}
