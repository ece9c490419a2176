package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListDirectory(t *testing.T) {
	// tmpDir/
	//   b.txt
	//   a.txt
	//   .hidden
	//   sub/
	//     nested.txt
	tmpDir := t.TempDir()
	for _, f := range []string{"b.txt", "a.txt", ".hidden", "sub/nested.txt"} {
		path := filepath.Join(tmpDir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte("test content"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{
			name: "hidden entries skipped",
			opts: ListOptions{},
			want: []string{"a.txt", "b.txt", "sub"},
		},
		{
			name: "all entries",
			opts: ListOptions{All: true},
			want: []string{".hidden", "a.txt", "b.txt", "sub"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ListDirectory(tmpDir, tt.opts)
			if err != nil {
				t.Fatalf("ListDirectory() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ListDirectory() returned %d entries, want %d: %v", len(got), len(tt.want), got)
			}
			for i, name := range tt.want {
				if want := filepath.Join(tmpDir, name); got[i] != want {
					t.Errorf("entry %d = %q, want %q", i, got[i], want)
				}
			}
		})
	}
}

func TestListDirectoryErrors(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "file.txt")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ListDirectory(filepath.Join(tmpDir, "missing"), ListOptions{}); err == nil {
		t.Error("expected error for missing directory")
	}
	if _, err := ListDirectory(file, ListOptions{}); err == nil {
		t.Error("expected error for regular file")
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		dir, name, want string
	}{
		{".", "a", "./a"},
		{"/tmp/", "a", "/tmp/a"},
		{"src", "main.go", "src/main.go"},
		{"", "a", "a"},
		{"./x/../y", "z", "./x/../y/z"},
	}
	for _, tt := range tests {
		if got := JoinPath(tt.dir, tt.name); got != tt.want {
			t.Errorf("JoinPath(%q, %q) = %q, want %q", tt.dir, tt.name, got, tt.want)
		}
	}
}

func TestIsHidden(t *testing.T) {
	if !IsHidden(".git") {
		t.Error(".git should be hidden")
	}
	if IsHidden("git") {
		t.Error("git should not be hidden")
	}
}
