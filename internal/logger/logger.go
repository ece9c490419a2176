package logger

import (
	"fmt"

	"github.com/harrison/lsf/internal/filter"
	"github.com/harrison/lsf/internal/record"
)

// Logger is the leveled logging interface shared by ConsoleLogger,
// FileLogger and Multi.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
}

// Multi fans every message out to each logger.
type Multi []Logger

func (m Multi) LogTrace(message string) {
	for _, l := range m {
		l.LogTrace(message)
	}
}

func (m Multi) LogDebug(message string) {
	for _, l := range m {
		l.LogDebug(message)
	}
}

func (m Multi) LogInfo(message string) {
	for _, l := range m {
		l.LogInfo(message)
	}
}

func (m Multi) LogWarn(message string) {
	for _, l := range m {
		l.LogWarn(message)
	}
}

func (m Multi) LogError(message string) {
	for _, l := range m {
		l.LogError(message)
	}
}

// Reporter adapts a Logger to the traversal error sink and the filter
// exclusion trace.
type Reporter struct {
	Logger
}

// NewReporter wraps l.
func NewReporter(l Logger) *Reporter {
	return &Reporter{Logger: l}
}

// Report logs a skipped entry or directory at warn level.
func (r *Reporter) Report(err error) {
	r.LogWarn(err.Error())
}

// Excluded logs why a record was filtered out, at debug level.
func (r *Reporter) Excluded(rec *record.Record, p *filter.Predicate) {
	r.LogDebug(fmt.Sprintf("%s excluded: fails test \"%s\"", rec.Path, p))
}
