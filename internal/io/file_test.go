package ioutils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-file.pdf", "normal-file.pdf"},
		{"file:with:colons.pdf", "file_with_colons.pdf"},
		{"file<with>brackets.pdf", "file_with_brackets.pdf"},
		{"file/with\\slashes.pdf", "file_with_slashes.pdf"},
		{"file|with|pipes.pdf", "file_with_pipes.pdf"},
		{"file?with*wildcards.pdf", "file_with_wildcards.pdf"},
		{"file\"with\"quotes.pdf", "file_with_quotes.pdf"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Error("EnsureDir should create a directory")
	}

	// Creating an existing directory is not an error.
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir() on existing dir error = %v", err)
	}
}

func TestSaveStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "body.txt")

	var written int64
	got, err := SaveStream(path, strings.NewReader("hello stream"), func(n int64) {
		written += n
	})
	if err != nil {
		t.Fatalf("SaveStream() error = %v", err)
	}
	if got != path {
		t.Errorf("SaveStream() path = %q, want %q", got, path)
	}
	if written != int64(len("hello stream")) {
		t.Errorf("progress reported %d bytes, want %d", written, len("hello stream"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "hello stream" {
		t.Errorf("file content = %q, want %q", data, "hello stream")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestSaveStream_ReadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.bin")

	if _, err := SaveStream(path, failingReader{}, nil); err == nil {
		t.Fatal("SaveStream() should surface the stream error")
	}

	// The partial file stays on disk, cleanup is the caller's business.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("partial file should remain, stat error = %v", err)
	}
}

type flakyCloser struct {
	io.Writer
	closeErr error
	closed   int
}

func (fc *flakyCloser) Close() error {
	fc.closed++
	return fc.closeErr
}

func TestDrain_CloseError(t *testing.T) {
	// A deferred write failure may only surface when the file is closed;
	// it must fail the save rather than report success.
	fc := &flakyCloser{Writer: io.Discard, closeErr: errors.New("disk full")}

	err := drain(fc, strings.NewReader("payload"), nil)
	if err == nil {
		t.Fatal("drain() should surface the close error")
	}
	if !errors.Is(err, fc.closeErr) {
		t.Errorf("drain() error = %v, want the close error", err)
	}
}

func TestDrain_ClosesOnCopyError(t *testing.T) {
	fc := &flakyCloser{Writer: io.Discard}

	if err := drain(fc, failingReader{}, nil); err == nil {
		t.Fatal("drain() should surface the read error")
	}
	if fc.closed != 1 {
		t.Errorf("drain() closed the destination %d times, want 1", fc.closed)
	}
}

func TestSaveStream_BadDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "file.bin")

	if _, err := SaveStream(path, strings.NewReader("x"), nil); err == nil {
		t.Fatal("SaveStream() into a missing directory should fail")
	}
}
