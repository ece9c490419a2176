// Package traverse walks the paths given on the command line, groups the
// entries it finds, and hands each filtered, sorted group to a Handler.
package traverse

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/lsf/internal/aggregate"
	"github.com/harrison/lsf/internal/fileutil"
	"github.com/harrison/lsf/internal/filter"
	"github.com/harrison/lsf/internal/order"
	"github.com/harrison/lsf/internal/record"
)

// Options controls what is collected and how it is grouped.
type Options struct {
	All           bool // include hidden entries
	Recursive     bool // descend into subdirectories
	DirectoryOnly bool // list a directory argument itself, not its contents
	Merge         bool // pool every entry into one group
}

// DirectoryAccessError reports a directory whose entries could not be read.
// The directory is skipped.
type DirectoryAccessError struct {
	Path string
	Err  error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("unable to access %s: %v", e.Path, e.Err)
}

func (e *DirectoryAccessError) Unwrap() error {
	return e.Err
}

// Group is one batch of records shown together.
type Group struct {
	Dir     string // directory of the first record, "." when it has none
	Records []*record.Record
}

// Handler consumes groups. An error from any method ends the run.
type Handler interface {
	BeginGroup(g *Group) error
	Entry(rec *record.Record) error
	EndGroup(g *Group, totals aggregate.Totals) error
}

// ErrorSink receives non-fatal errors: unreadable directories and entries
// that could not be stat'ed.
type ErrorSink interface {
	Report(err error)
}

// Config wires an Engine.
type Config struct {
	Options Options
	Filters *filter.Set
	Sort    order.Spec
	Handler Handler
	Sink    ErrorSink
	Debug   filter.Debugger // optional exclusion trace
}

// Engine runs one traversal. It is not safe for concurrent use.
type Engine struct {
	cfg Config
	agg aggregate.Aggregator
}

// New returns an Engine for cfg.
func New(cfg Config) *Engine {
	if cfg.Sort.Keys == nil {
		cfg.Sort = order.Default()
	}
	return &Engine{cfg: cfg}
}

// Run walks paths in order and returns the grand totals and the number of
// groups handled.
func (e *Engine) Run(ctx context.Context, paths []string) (aggregate.Totals, int, error) {
	var pending []*record.Record
	lastDir, seen := "", false

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return e.agg.GrandTotal(), e.agg.Groups(), err
		}
		thisDir := filepath.Dir(path)
		if seen && thisDir != lastDir && !e.cfg.Options.Merge {
			if err := e.flush(ctx, pending); err != nil {
				return e.agg.GrandTotal(), e.agg.Groups(), err
			}
			pending = nil
		}

		if isDir(path) && !e.cfg.Options.DirectoryOnly {
			recs, err := e.directory(ctx, path)
			if err != nil {
				return e.agg.GrandTotal(), e.agg.Groups(), err
			}
			pending = append(pending, recs...)
		} else if rec := e.stat(path); rec != nil {
			pending = append(pending, rec)
		}
		lastDir, seen = thisDir, true
	}

	if err := e.flush(ctx, pending); err != nil {
		return e.agg.GrandTotal(), e.agg.Groups(), err
	}
	return e.agg.GrandTotal(), e.agg.Groups(), nil
}

// directory collects the entries of dir. Outside merge mode they are
// flushed immediately and only deferred merge entries are returned.
func (e *Engine) directory(ctx context.Context, dir string) ([]*record.Record, error) {
	children, err := fileutil.ListDirectory(dir, fileutil.ListOptions{All: e.cfg.Options.All})
	if err != nil {
		e.report(&DirectoryAccessError{Path: dir, Err: unwrapPathError(err)})
		return nil, nil
	}
	if len(children) == 0 {
		return nil, nil
	}

	recs := make([]*record.Record, 0, len(children))
	var subdirs []string
	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec := e.stat(child)
		if rec == nil {
			continue
		}
		recs = append(recs, rec)
		if rec.Type == record.TypeDir {
			subdirs = append(subdirs, child)
		}
	}

	if !e.cfg.Options.Merge {
		if err := e.flush(ctx, recs); err != nil {
			return nil, err
		}
		recs = nil
	}

	if e.cfg.Options.Recursive {
		for _, sub := range subdirs {
			more, err := e.directory(ctx, sub)
			if err != nil {
				return nil, err
			}
			recs = append(recs, more...)
		}
	}
	return recs, nil
}

// flush filters, sorts and hands recs to the handler as one group.
func (e *Engine) flush(ctx context.Context, recs []*record.Record) error {
	if len(recs) == 0 {
		return nil
	}
	if e.cfg.Filters != nil {
		kept, err := e.cfg.Filters.Apply(recs, e.cfg.Debug)
		if err != nil {
			return err
		}
		recs = kept
	}
	if len(recs) == 0 {
		return nil
	}
	order.Sort(recs, e.cfg.Sort)

	g := &Group{Dir: recs[0].Dir, Records: recs}
	if g.Dir == "" {
		g.Dir = "."
	}

	e.agg.BeginGroup()
	if err := e.cfg.Handler.BeginGroup(g); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.cfg.Handler.Entry(rec); err != nil {
			return err
		}
		e.agg.Record(rec.Size)
	}
	return e.cfg.Handler.EndGroup(g, e.agg.EndGroup())
}

func (e *Engine) stat(path string) *record.Record {
	rec, err := record.Stat(path)
	if err != nil {
		e.report(err)
		return nil
	}
	return rec
}

func (e *Engine) report(err error) {
	if e.cfg.Sink != nil {
		e.cfg.Sink.Report(err)
	}
}

// isDir follows a final symbolic link, so a link given explicitly on the
// command line lists its target's contents.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func unwrapPathError(err error) error {
	var perr *os.PathError
	if errors.As(err, &perr) {
		return perr.Err
	}
	return err
}
