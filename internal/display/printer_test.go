package display

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/lsf/internal/aggregate"
	"github.com/harrison/lsf/internal/record"
	"github.com/harrison/lsf/internal/scalar"
	"github.com/harrison/lsf/internal/traverse"
)

var testNow = time.Date(2024, time.October, 14, 12, 0, 0, 0, time.UTC)

func testSession() *scalar.Session {
	return scalar.NewSession(
		scalar.WithClock(func() time.Time { return testNow }),
		scalar.WithLocation(time.UTC),
		scalar.WithDirectory(&scalar.MapDirectory{
			Users:  map[string]uint32{"alice": 1000},
			Groups: map[string]uint32{"staff": 50},
		}),
	)
}

func mustFields(t *testing.T, spec string) []record.Field {
	t.Helper()
	fields, err := record.ParseFields(spec)
	require.NoError(t, err)
	return fields
}

func sampleFile() *record.Record {
	return &record.Record{
		Mode:  0o100644,
		Nlink: 1,
		UID:   1000,
		GID:   50,
		Size:  1500,
		Mtime: time.Date(2024, time.October, 13, 12, 0, 0, 0, time.UTC).Unix(),
		Dir:   "src",
		Name:  "data.bin",
		Path:  "src/data.bin",
		Type:  record.TypeRegular,
	}
}

func TestLine(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, testSession(), Options{Fields: mustFields(t, "MNugsmnt")})

	assert.Equal(t, "-rw-r--r-- 1 alice staff       1500 Oct 13 12:00 data.bin", p.Line(sampleFile()))

	link := sampleFile()
	link.Mode = 0o120777
	link.Type = record.TypeLink
	link.Name = "current"
	link.Target = "data.bin"
	assert.Equal(t, "lrwxrwxrwx 1 alice staff       1500 Oct 13 12:00 current -> data.bin", p.Line(link))
}

func TestLineSkipsEmptyAndZeroFields(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, testSession(), Options{Fields: mustFields(t, "idpnT")})

	rec := sampleFile()
	rec.Dir = ""
	assert.Equal(t, "data.bin regular", p.Line(rec))

	rec.Inode = 42
	rec.Dir = "src"
	assert.Equal(t, "42 src data.bin regular", p.Line(rec))
}

func TestLineUnknownIdentityFallsBackToNumber(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, testSession(), Options{Fields: mustFields(t, "ug")})
	rec := sampleFile()
	rec.UID, rec.GID = 7, 8
	assert.Equal(t, "7 8", p.Line(rec))
}

func printGroup(t *testing.T, p *Printer, g *traverse.Group) {
	t.Helper()
	var agg aggregate.Aggregator
	agg.BeginGroup()
	require.NoError(t, p.BeginGroup(g))
	for _, rec := range g.Records {
		require.NoError(t, p.Entry(rec))
		agg.Record(rec.Size)
	}
	require.NoError(t, p.EndGroup(g, agg.EndGroup()))
}

func TestGroupOutput(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, testSession(), Options{Fields: mustFields(t, "sn")})

	printGroup(t, p, &traverse.Group{Dir: "src", Records: []*record.Record{sampleFile()}})
	require.NoError(t, p.Finish(aggregate.Totals{Files: 1, Bytes: 1500}, 1))

	want := "\nDirectory src\n\n" +
		"      1500 data.bin\n" +
		"\nTotal of 1 files, 1500 bytes (1.46 Kbytes)\n"
	assert.Equal(t, want, out.String())
}

func TestGrandTotalNeedsTwoGroups(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, testSession(), Options{Fields: mustFields(t, "n")})

	require.NoError(t, p.Finish(aggregate.Totals{Files: 3, Bytes: 849}, 2))
	assert.Equal(t, "\n Grand total of 3 files, 849 bytes\n", out.String())

	out.Reset()
	require.NoError(t, p.Finish(aggregate.Totals{Files: 3, Bytes: 849}, 1))
	assert.Empty(t, out.String())
}

func TestQuietAndMerge(t *testing.T) {
	g := &traverse.Group{Dir: "src", Records: []*record.Record{sampleFile()}}

	var quiet bytes.Buffer
	p := NewPrinter(&quiet, testSession(), Options{Fields: mustFields(t, "f"), Quiet: true})
	printGroup(t, p, g)
	require.NoError(t, p.Finish(aggregate.Totals{Files: 5}, 3))
	assert.Equal(t, "src/data.bin\n", quiet.String())

	var merged bytes.Buffer
	p = NewPrinter(&merged, testSession(), Options{Fields: mustFields(t, "f"), Merge: true})
	printGroup(t, p, g)
	assert.NotContains(t, merged.String(), "Directory")
	assert.Contains(t, merged.String(), "Total of 1 files")
}

func TestColorMode(t *testing.T) {
	for _, s := range []string{"", "auto", "always", "never"} {
		_, err := ParseColorMode(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseColorMode("sometimes")
	assert.Error(t, err)

	var buf bytes.Buffer
	assert.False(t, ColorAuto.Enabled(&buf))
	assert.True(t, ColorAlways.Enabled(&buf))
	assert.False(t, ColorNever.Enabled(os.Stdout))
}

func TestColorAlwaysColorsHeaders(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, testSession(), Options{Fields: mustFields(t, "n"), Color: ColorAlways})

	dir := sampleFile()
	dir.Type = record.TypeDir
	dir.Name = "pkg"
	printGroup(t, p, &traverse.Group{Dir: "src", Records: []*record.Record{dir}})

	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "pkg")
}
