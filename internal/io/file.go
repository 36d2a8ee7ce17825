// Package ioutils provides the filesystem side of batchdl: directory
// creation, streamed saving of response bodies, and filename sanitization.
package ioutils

import (
	"io"
	"os"
	"regexp"
	"strings"
)

// EnsureDir creates a directory and all parent directories if they don't
// exist. Directories are created with mode 0755; an already existing
// directory is not an error.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// ProgressWriter wraps a writer to track the bytes flowing through it.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    OnWrite: func(n int64) { atomic.AddInt64(&received, n) },
//	}
//	io.Copy(pw, resp.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Written is the running total of bytes written.
	Written int64

	// OnWrite is called after each Write with the size of that write.
	OnWrite func(n int64)
}

// Write implements io.Writer, counting bytes and calling OnWrite.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnWrite != nil {
		pw.OnWrite(int64(n))
	}
	return n, err
}

// SaveStream pipes r into a newly created file at path, without buffering
// the body in memory. It returns the path once the source reaches EOF.
//
// On a transfer error the partially written file is left on disk; callers
// that care about partial output own its cleanup. onProgress, when non-nil,
// is invoked with the size of each chunk written.
func SaveStream(path string, r io.Reader, onProgress func(n int64)) (string, error) {
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if err := drain(file, r, onProgress); err != nil {
		return "", err
	}

	return path, nil
}

// drain copies r into dst and closes it. A write error surfacing only at
// close still fails the save, so success means the bytes reached the file.
func drain(dst io.WriteCloser, r io.Reader, onProgress func(n int64)) error {
	var w io.Writer = dst
	if onProgress != nil {
		w = &ProgressWriter{Writer: dst, OnWrite: onProgress}
	}

	if _, err := io.Copy(w, r); err != nil {
		dst.Close()
		return err
	}

	return dst.Close()
}

// SanitizeFileName removes or replaces characters that are invalid in
// file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("report: Q1/Q2")  // Returns "report_ Q1_Q2"
//	SanitizeFileName("dump...")        // Returns "dump"
func SanitizeFileName(name string) string {
	// Replace invalid path/file characters with underscore
	// Characters: < > : " / \ | ? * and control characters (0x00-0x1f)
	invalidChars := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name = invalidChars.ReplaceAllString(name, "_")

	// Remove trailing dots (Windows doesn't allow filenames ending with dots)
	name = regexp.MustCompile(`\.+$`).ReplaceAllString(name, "")

	// Replace multiple whitespace with single space for cleaner names
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")

	// Remove trailing whitespace
	name = strings.TrimRight(name, " ")

	return name
}
