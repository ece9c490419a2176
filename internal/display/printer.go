package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/harrison/lsf/internal/aggregate"
	"github.com/harrison/lsf/internal/record"
	"github.com/harrison/lsf/internal/scalar"
	"github.com/harrison/lsf/internal/traverse"
)

// Options configures a Printer.
type Options struct {
	Fields []record.Field
	Quiet  bool // lines only: no headers or totals
	Merge  bool // groups span directories, so no directory header
	Color  ColorMode
}

// Printer writes listings. It implements traverse.Handler.
type Printer struct {
	out    io.Writer
	sess   *scalar.Session
	opts   Options
	colors *palette
}

var _ traverse.Handler = (*Printer)(nil)

// NewPrinter returns a Printer writing to out. Users, groups and times are
// rendered through sess.
func NewPrinter(out io.Writer, sess *scalar.Session, opts Options) *Printer {
	return &Printer{
		out:    out,
		sess:   sess,
		opts:   opts,
		colors: newPalette(opts.Color.Enabled(out)),
	}
}

// BeginGroup prints the directory header.
func (p *Printer) BeginGroup(g *traverse.Group) error {
	if p.opts.Quiet || p.opts.Merge {
		return nil
	}
	_, err := fmt.Fprintf(p.out, "\n%s\n\n", p.colors.header.Sprintf("Directory %s", g.Dir))
	return err
}

// Entry prints one record line.
func (p *Printer) Entry(rec *record.Record) error {
	_, err := fmt.Fprintln(p.out, p.Line(rec))
	return err
}

// EndGroup prints the group total.
func (p *Printer) EndGroup(_ *traverse.Group, totals aggregate.Totals) error {
	if p.opts.Quiet {
		return nil
	}
	_, err := fmt.Fprintf(p.out, "\n%s\n", p.colors.total.Sprintf("Total of %s", totals))
	return err
}

// Finish prints the grand total when more than one group was shown.
func (p *Printer) Finish(grand aggregate.Totals, groups int) error {
	if p.opts.Quiet || groups < 2 {
		return nil
	}
	_, err := fmt.Fprintf(p.out, "\n %s\n", p.colors.total.Sprintf("Grand total of %s", grand))
	return err
}

// Line renders the selected fields of rec.
func (p *Printer) Line(rec *record.Record) string {
	parts := make([]string, 0, len(p.opts.Fields))
	for _, f := range p.opts.Fields {
		if s := p.field(rec, f); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func (p *Printer) field(rec *record.Record, f record.Field) string {
	switch f {
	case record.FieldMode:
		return rec.ModeString()
	case record.FieldInode, record.FieldDevice, record.FieldNlink:
		n, _ := rec.Int(f)
		if n == 0 {
			return ""
		}
		return strconv.FormatUint(uint64(n), 10)
	case record.FieldSize:
		return fmt.Sprintf("%10d", rec.Size)
	case record.FieldUID, record.FieldGID, record.FieldAtime, record.FieldMtime, record.FieldCtime:
		v, _ := rec.Scalar(f)
		return p.sess.Format(v)
	case record.FieldName, record.FieldFullPath:
		text, _ := rec.Text(f)
		return p.colorName(rec, text)
	case record.FieldPath:
		return rec.Dir
	case record.FieldTarget:
		if rec.Target == "" {
			return ""
		}
		return "-> " + rec.Target
	case record.FieldType:
		return rec.Type.String()
	}
	return ""
}

func (p *Printer) colorName(rec *record.Record, text string) string {
	if text == "" {
		return ""
	}
	switch rec.Type {
	case record.TypeDir:
		return p.colors.dir.Sprint(text)
	case record.TypeLink:
		return p.colors.link.Sprint(text)
	case record.TypeBrokenLink:
		return p.colors.broken.Sprint(text)
	}
	return text
}
