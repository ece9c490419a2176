package filelock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestNewFileLock(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "test.lock")

	lock := NewFileLock(lockPath)
	if lock == nil {
		t.Fatal("NewFileLock should not return nil")
	}

	if lock.path != lockPath {
		t.Errorf("Expected lock path %s, got %s", lockPath, lock.path)
	}
}

func TestLockUnlock(t *testing.T) {
	tmpDir := t.TempDir()
	lock := NewFileLock(filepath.Join(tmpDir, "test.lock"))

	if err := lock.Lock(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
}

func TestLockAndAppend(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "logs", "lsf.log")

	if err := LockAndAppend(path, []byte("one\n")); err != nil {
		t.Fatalf("LockAndAppend failed: %v", err)
	}
	if err := LockAndAppend(path, []byte("two\n")); err != nil {
		t.Fatalf("LockAndAppend failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "one\ntwo\n" {
		t.Errorf("Expected appended content, got %q", string(data))
	}

	if _, err := os.Stat(LockPath(path)); err != nil {
		t.Errorf("Expected lock file to exist: %v", err)
	}
}

func TestConcurrentLockAndAppend(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "lsf.log")

	const goroutines = 8
	const lines = 20

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < lines; i++ {
				line := fmt.Sprintf("writer-%d line-%d %s\n", id, i, strings.Repeat("x", 64))
				if err := LockAndAppend(path, []byte(line)); err != nil {
					t.Errorf("LockAndAppend failed: %v", err)
				}
			}
		}(g)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	got := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(got) != goroutines*lines {
		t.Fatalf("Expected %d lines, got %d", goroutines*lines, len(got))
	}
	for _, line := range got {
		if !strings.HasPrefix(line, "writer-") || !strings.HasSuffix(line, strings.Repeat("x", 64)) {
			t.Errorf("Interleaved line: %q", line)
		}
	}
}

func TestLockAndAppendUnwritableDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	// parent is a regular file, so the directory cannot be created
	if err := LockAndAppend(filepath.Join(blocker, "lsf.log"), []byte("x")); err == nil {
		t.Error("Expected error when parent is a file")
	}
}
