package expr

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/lsf/internal/scalar"
)

func testSession() *scalar.Session {
	now := time.Date(2024, time.October, 14, 12, 0, 0, 0, time.UTC)
	dir := &scalar.MapDirectory{
		Users:  map[string]uint32{"root": 0, "alice": 1000},
		Groups: map[string]uint32{"wheel": 0},
	}
	return scalar.NewSession(
		scalar.WithClock(func() time.Time { return now }),
		scalar.WithLocation(time.UTC),
		scalar.WithDirectory(dir),
	)
}

func testEnv() MapEnv {
	return MapEnv{
		"name":  String("main.go"),
		"path":  String("./cmd"),
		"size":  Scalar(scalar.Size(2048)),
		"uid":   Scalar(scalar.User(1000)),
		"gid":   Scalar(scalar.Group(0)),
		"mtime": Scalar(scalar.Time(time.Date(2024, time.October, 13, 12, 0, 0, 0, time.UTC).Unix())),
		"nlink": Int(1),
	}
}

func TestEval(t *testing.T) {
	sess := testSession()
	env := testEnv()

	tests := []struct {
		src  string
		want bool
	}{
		{`size > "1k"`, true},
		{`size > "4k"`, false},
		{`"1k" < size`, true},
		{`size == 2048`, true},
		{`uid == "alice"`, true},
		{`uid != "root"`, true},
		{`gid == "wheel"`, true},
		{`mtime > "2d"`, true},
		{`mtime < "12h"`, true},
		{`name =~ "\.go$"`, true},
		{`name !~ "^main"`, false},
		{`name == "main.go" and nlink == 1`, true},
		{`name == "x" or nlink == 1`, true},
		{`not name == "main.go"`, false},
		{`! (size < 10)`, true},
		{`name[0] == "m"`, true},
		{`name[-1] == "o"`, true},
		{`"go" in name`, true},
		{`uid in ["root", "alice"]`, true},
		{`nlink in [2, 3]`, false},
		{`nlink > -1`, true},
		{`true && nlink`, true},
		{`name`, true},
		{`"" or false`, false},
		{`path == "./cmd" && name != path`, true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog, err := Compile(tt.src, nil)
			require.NoError(t, err)
			got, err := prog.Eval(sess, env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileErrors(t *testing.T) {
	known := func(name string) bool { _, ok := testEnv()[name]; return ok }

	tests := []string{
		``,
		`   `,
		`size >`,
		`(size > 1`,
		`name =~ "("`,
		`name =~ 5`,
		`colour == "red"`,
		`size > 1 1`,
		`name[x]`,
		`"unterminated`,
		`size @ 3`,
		`[1, 2`,
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, err := Compile(src, known)
			require.Error(t, err)
			var serr *SyntaxError
			assert.True(t, errors.As(err, &serr), "got %T", err)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	sess := testSession()
	env := testEnv()

	tests := []string{
		`size > "lots"`,
		`uid == "nobody"`,
		`name < 3`,
		`nlink =~ "1"`,
		`name[20] == "x"`,
		`missing == 1`,
		`nlink in 3`,
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			prog, err := Compile(src, nil)
			require.NoError(t, err)
			_, err = prog.Eval(sess, env)
			assert.Error(t, err)
		})
	}
}

func TestIndexErrorIsTyped(t *testing.T) {
	prog, err := Compile(`name[20] == "x"`, nil)
	require.NoError(t, err)
	_, err = prog.Eval(testSession(), testEnv())

	var ierr *IndexError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, "string", ierr.Kind)
	assert.Equal(t, 20, ierr.Index)
	assert.EqualError(t, err, "string index 20 out of range")
}

func TestShortCircuit(t *testing.T) {
	prog, err := Compile(`nlink == 2 and missing == 1`, nil)
	require.NoError(t, err)
	got, err := prog.Eval(testSession(), testEnv())
	require.NoError(t, err)
	assert.False(t, got)

	prog, err = Compile(`nlink == 1 or missing == 1`, nil)
	require.NoError(t, err)
	got, err = prog.Eval(testSession(), testEnv())
	require.NoError(t, err)
	assert.True(t, got)
}

func TestProgramString(t *testing.T) {
	prog, err := Compile(`a == 1 or b == 2 and not c`, nil)
	require.NoError(t, err)
	assert.Equal(t, "(a == 1 or (b == 2 and not c))", prog.String())
	assert.Equal(t, `a == 1 or b == 2 and not c`, prog.Source())
}

func TestLexEscapes(t *testing.T) {
	toks, err := lex(`"a\"b\d" 'x\ty'`)
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, `a"b\d`, toks[0].text)
	assert.Equal(t, "x\ty", toks[1].text)
	assert.Equal(t, tokEOF, toks[2].kind)
}
