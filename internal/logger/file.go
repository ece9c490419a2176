package logger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/lsf/internal/filelock"
)

// FileLogger appends log lines to a shared log file. Every run opens with a
// header carrying a run ID, and every append holds the file's lock so that
// concurrent lsf processes never interleave partial lines.
type FileLogger struct {
	path  string
	runID string
	min   level
	mu    sync.Mutex
	now   func() time.Time
}

// NewFileLogger opens path for appending and writes the run header.
// args is recorded in the header; pass the command line.
func NewFileLogger(path string, logLevel string, args []string) (*FileLogger, error) {
	fl := &FileLogger{
		path:  path,
		runID: uuid.NewString(),
		min:   parseLevel(logLevel),
		now:   time.Now,
	}

	header := fmt.Sprintf("=== lsf run %s ===\nStarted at: %s\nArguments: %s\n",
		fl.runID, fl.now().Format(time.RFC3339), strings.Join(args, " "))
	if err := filelock.LockAndAppend(path, []byte(header)); err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return fl, nil
}

// RunID identifies this run's lines in a shared log.
func (fl *FileLogger) RunID() string {
	return fl.runID
}

// Path returns the log file path.
func (fl *FileLogger) Path() string {
	return fl.path
}

func (fl *FileLogger) LogTrace(message string) { fl.log(levelTrace, message) }
func (fl *FileLogger) LogDebug(message string) { fl.log(levelDebug, message) }
func (fl *FileLogger) LogInfo(message string)  { fl.log(levelInfo, message) }
func (fl *FileLogger) LogWarn(message string)  { fl.log(levelWarn, message) }
func (fl *FileLogger) LogError(message string) { fl.log(levelError, message) }

// log appends one line, dropping it if the file cannot be written.
func (fl *FileLogger) log(l level, message string) {
	if l < fl.min {
		return
	}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	filelock.LockAndAppend(fl.path, []byte(formatLine(fl.now(), l, message, false)))
}
