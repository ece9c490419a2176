// Package logger provides the diagnostic logging used by lsf: warnings for
// entries that could not be read, debug traces of filter exclusions, and an
// optional run log file.
//
// Listing output does not go through this package. Loggers write to stderr
// or their own file so that stdout stays a clean listing.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type level int

const (
	levelTrace level = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
)

var levelNames = [...]string{"trace", "debug", "info", "warn", "error"}

var levelColors = [...]color.Attribute{color.FgHiBlack, color.FgCyan, color.FgBlue, color.FgYellow, color.FgRed}

func (l level) tag() string {
	return strings.ToUpper(levelNames[l])
}

func lookupLevel(name string) (level, bool) {
	for i, n := range levelNames {
		if n == name {
			return level(i), true
		}
	}
	return 0, false
}

// ValidLevel reports whether name is one of trace, debug, info, warn, error.
func ValidLevel(name string) bool {
	_, ok := lookupLevel(name)
	return ok
}

// parseLevel is lenient about case and spacing and falls back to info.
func parseLevel(name string) level {
	if l, ok := lookupLevel(strings.ToLower(strings.TrimSpace(name))); ok {
		return l
	}
	return levelInfo
}

// formatLine renders "[15:04:05] [LEVEL] message\n".
func formatLine(ts time.Time, l level, message string, colored bool) string {
	tag := l.tag()
	if colored {
		c := color.New(levelColors[l])
		c.EnableColor()
		tag = c.Sprint(tag)
	}
	return fmt.Sprintf("[%s] [%s] %s\n", ts.Format("15:04:05"), tag, message)
}

// ConsoleLogger writes timestamped, level-filtered lines to a writer.
// Levels are colored when the writer is the process's stdout or stderr and
// color is not disabled.
type ConsoleLogger struct {
	mu    sync.Mutex
	w     io.Writer
	min   level
	color bool
	now   func() time.Time
}

// NewConsoleLogger returns a logger writing to w at the named level. A nil
// w discards everything; an unknown level means info.
func NewConsoleLogger(w io.Writer, levelName string) *ConsoleLogger {
	return &ConsoleLogger{
		w:     w,
		min:   parseLevel(levelName),
		color: isStdStream(w) && !color.NoColor,
		now:   time.Now,
	}
}

func isStdStream(w io.Writer) bool {
	return w != nil && (w == os.Stdout || w == os.Stderr)
}

// SetColor forces color output on or off.
func (cl *ConsoleLogger) SetColor(enabled bool) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.color = enabled
}

func (cl *ConsoleLogger) LogTrace(message string) { cl.log(levelTrace, message) }
func (cl *ConsoleLogger) LogDebug(message string) { cl.log(levelDebug, message) }
func (cl *ConsoleLogger) LogInfo(message string)  { cl.log(levelInfo, message) }
func (cl *ConsoleLogger) LogWarn(message string)  { cl.log(levelWarn, message) }
func (cl *ConsoleLogger) LogError(message string) { cl.log(levelError, message) }

func (cl *ConsoleLogger) log(l level, message string) {
	if cl.w == nil || l < cl.min {
		return
	}
	cl.mu.Lock()
	defer cl.mu.Unlock()
	io.WriteString(cl.w, formatLine(cl.now(), l, message, cl.color))
}
