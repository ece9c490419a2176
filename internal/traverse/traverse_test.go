package traverse

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/lsf/internal/aggregate"
	"github.com/harrison/lsf/internal/filter"
	"github.com/harrison/lsf/internal/order"
	"github.com/harrison/lsf/internal/record"
	"github.com/harrison/lsf/internal/scalar"
)

type handledGroup struct {
	dir    string
	names  []string
	totals aggregate.Totals
}

type collector struct {
	groups  []handledGroup
	current *handledGroup
	failOn  string
}

func (c *collector) BeginGroup(g *Group) error {
	c.current = &handledGroup{dir: g.Dir}
	return nil
}

func (c *collector) Entry(rec *record.Record) error {
	if rec.Name == c.failOn {
		return errors.New("handler refused " + rec.Name)
	}
	c.current.names = append(c.current.names, rec.Name)
	return nil
}

func (c *collector) EndGroup(g *Group, totals aggregate.Totals) error {
	c.current.totals = totals
	c.groups = append(c.groups, *c.current)
	c.current = nil
	return nil
}

func (c *collector) allNames() []string {
	var out []string
	for _, g := range c.groups {
		out = append(out, g.names...)
	}
	return out
}

type sink struct{ errs []error }

func (s *sink) Report(err error) { s.errs = append(s.errs, err) }

// makeTree creates files (with sizes) and directories under root.
func makeTree(t *testing.T, root string, files map[string]int) {
	t.Helper()
	for name, size := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		if size < 0 {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	}
}

func run(t *testing.T, opts Options, filters *filter.Set, paths ...string) (*collector, *sink, aggregate.Totals, int) {
	t.Helper()
	c, s := &collector{}, &sink{}
	e := New(Config{Options: opts, Filters: filters, Sort: order.Default(), Handler: c, Sink: s})
	grand, groups, err := e.Run(context.Background(), paths)
	require.NoError(t, err)
	return c, s, grand, groups
}

func TestRunDirectory(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]int{"b": 10, "a": 20, ".hidden": 5, "sub": -1, "sub/inner": 7})

	c, s, grand, groups := run(t, Options{}, nil, root)
	assert.Empty(t, s.errs)
	require.Len(t, c.groups, 1)
	assert.Equal(t, root, c.groups[0].dir)
	assert.Equal(t, []string{"a", "b", "sub"}, c.groups[0].names)
	assert.Equal(t, 1, groups)
	assert.Equal(t, 3, grand.Files)
}

func TestRunAllIncludesHidden(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]int{"a": 1, ".hidden": 1})

	c, _, _, _ := run(t, Options{All: true}, nil, root)
	assert.Equal(t, []string{".hidden", "a"}, c.allNames())
}

func TestRunRecursive(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]int{
		"top":          1,
		"one":          -1,
		"one/x":        2,
		"one/deep":     -1,
		"one/deep/y":   3,
		"two":          -1,
		"two/z":        4,
		".skip":        -1,
		".skip/hidden": 5,
	})
	require.NoError(t, os.Symlink(filepath.Join(root, "two"), filepath.Join(root, "link")))

	c, _, _, groups := run(t, Options{Recursive: true}, nil, root)

	// depth first, parent group before its children, links not followed
	want := []handledGroup{
		{dir: root, names: []string{"link", "one", "top", "two"}},
		{dir: filepath.Join(root, "one"), names: []string{"deep", "x"}},
		{dir: filepath.Join(root, "one", "deep"), names: []string{"y"}},
		{dir: filepath.Join(root, "two"), names: []string{"z"}},
	}
	require.Len(t, c.groups, len(want))
	for i, g := range want {
		assert.Equal(t, g.dir, c.groups[i].dir)
		assert.Equal(t, g.names, c.groups[i].names)
	}
	assert.Equal(t, 4, groups)
	assert.Equal(t, aggregate.Totals{Files: 1, Bytes: 3}, c.groups[2].totals)
}

func TestMergeMatchesDefaultOnFlatDirectory(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]int{"c": 3, "a": 1, "b": 2})

	def, _, defGrand, _ := run(t, Options{}, nil, root)
	merged, _, mergedGrand, groups := run(t, Options{Merge: true}, nil, root)

	assert.Equal(t, def.allNames(), merged.allNames())
	assert.Equal(t, defGrand, mergedGrand)
	assert.Equal(t, 1, groups)
}

func TestMergePoolsRecursiveEntries(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]int{"b": 1, "sub": -1, "sub/a": 1})

	c, _, _, groups := run(t, Options{Merge: true, Recursive: true}, nil, root)
	require.Equal(t, 1, groups)
	// one pool sorted by name across directories
	assert.Equal(t, []string{"a", "b", "sub"}, c.groups[0].names)
}

func TestFileArgumentsGroupByParent(t *testing.T) {
	one, two := t.TempDir(), t.TempDir()
	makeTree(t, one, map[string]int{"a": 1, "b": 1})
	makeTree(t, two, map[string]int{"c": 1})

	c, _, grand, groups := run(t, Options{}, nil,
		filepath.Join(one, "b"), filepath.Join(one, "a"), filepath.Join(two, "c"))
	require.Len(t, c.groups, 2)
	assert.Equal(t, []string{"a", "b"}, c.groups[0].names)
	assert.Equal(t, []string{"c"}, c.groups[1].names)
	assert.Equal(t, 2, groups)
	assert.Equal(t, aggregate.Totals{Files: 3, Bytes: 3}, grand)
}

func TestDirectoryOnly(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]int{"sub": -1, "sub/x": 1})

	c, _, _, _ := run(t, Options{DirectoryOnly: true}, nil, filepath.Join(root, "sub"))
	assert.Equal(t, []string{"sub"}, c.allNames())
}

func TestFiltersAndEmptyGroups(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]int{"small": 10, "big": 5000, "sub": -1, "sub/big2": 6000})

	sess := scalar.NewSession()
	filters := filter.NewSet(sess)
	require.NoError(t, filters.Register("size", "+1k"))
	require.NoError(t, filters.Register("Typecode", "+r"))

	c, _, grand, groups := run(t, Options{}, filters, root)
	assert.Equal(t, []string{"big"}, c.allNames())
	assert.Equal(t, 1, groups)
	assert.Equal(t, aggregate.Totals{Files: 1, Bytes: 5000}, grand)

	filters = filter.NewSet(sess)
	require.NoError(t, filters.Register("name", "^nothing$"))
	c, _, grand, groups = run(t, Options{Recursive: true}, filters, root)
	assert.Empty(t, c.groups)
	assert.Zero(t, groups)
	assert.Zero(t, grand.Files)
}

func TestStatErrorsAreReported(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]int{"real": 1})
	missing := filepath.Join(root, "missing")

	c, s, _, _ := run(t, Options{}, nil, missing, filepath.Join(root, "real"))
	assert.Equal(t, []string{"real"}, c.allNames())
	require.Len(t, s.errs, 1)
	var serr *record.StatError
	assert.True(t, errors.As(s.errs[0], &serr))
	assert.Equal(t, missing, serr.Path)
}

func TestUnreadableDirectoryIsSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := t.TempDir()
	makeTree(t, root, map[string]int{"ok": -1, "ok/a": 1, "locked": -1, "locked/secret": 1})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	c, s, _, _ := run(t, Options{Recursive: true}, nil, root)
	names := c.allNames()
	sort.Strings(names)
	assert.Equal(t, []string{"a", "locked", "ok"}, names)

	require.Len(t, s.errs, 1)
	var derr *DirectoryAccessError
	require.True(t, errors.As(s.errs[0], &derr))
	assert.Equal(t, locked, derr.Path)
	assert.True(t, errors.Is(derr, os.ErrPermission))
}

func TestCancellation(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]int{"a": 1, "b": 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &collector{}
	_, _, err := New(Config{Handler: c}).Run(ctx, []string{root})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, c.groups)
}

func TestHandlerErrorAborts(t *testing.T) {
	one, two := t.TempDir(), t.TempDir()
	makeTree(t, one, map[string]int{"a": 1, "stop": 1})
	makeTree(t, two, map[string]int{"b": 1})

	c := &collector{failOn: "stop"}
	_, _, err := New(Config{Handler: c}).Run(context.Background(), []string{one, two})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler refused stop")
	assert.Empty(t, c.groups)
}

func TestExpressionEvalErrorAborts(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]int{"ab": 1})

	filters := filter.NewSet(scalar.NewSession())
	require.NoError(t, filters.Register("expr", `name[5] == "x"`))

	_, _, err := New(Config{Filters: filters, Handler: &collector{}}).Run(context.Background(), []string{root})
	var eerr *filter.EvalError
	assert.True(t, errors.As(err, &eerr))
}
