package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode selects when output is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color value. Empty means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return ColorMode(s), nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Enabled reports whether writes to w should be colored in this mode.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return isTerminal(w) && !color.NoColor
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// palette holds the colors of one Printer. All members are plain when
// color is off.
type palette struct {
	header *color.Color
	total  *color.Color
	dir    *color.Color
	link   *color.Color
	broken *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		header: color.New(color.Bold),
		total:  color.New(color.FgGreen),
		dir:    color.New(color.FgBlue, color.Bold),
		link:   color.New(color.FgCyan),
		broken: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.header, p.total, p.dir, p.link, p.broken} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}
