package store

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tableflip.dev/kcal/pkg/entry"
)

// maxLineSize bounds one record. Longer lines are skipped as corrupt.
const maxLineSize = 1 << 20

// scanLines calls fn for each non-blank line until fn returns false. Lines
// over maxLineSize are drained and skipped. The slice passed to fn is only
// valid for the duration of the call.
func scanLines(r io.Reader, fn func(line []byte) bool) error {
	br := bufio.NewReaderSize(r, 64*1024)
	var buf []byte
	skipping := false
	for {
		chunk, err := br.ReadSlice('\n')
		if !skipping {
			buf = append(buf, chunk...)
			if len(buf) > maxLineSize {
				skipping = true
				buf = buf[:0]
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && err != io.EOF {
			return err
		}

		if !skipping {
			if line := bytes.TrimSpace(buf); len(line) > 0 && !fn(line) {
				return nil
			}
		}
		buf = buf[:0]
		skipping = false
		if err == io.EOF {
			return nil
		}
	}
}

// forEachEvent visits every line of name that decodes to a JSON object. A
// missing file has no events.
func forEachEvent(files *atomicFiles, name string, fn func(*entry.Event) bool) error {
	rc, err := files.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("store: open %s: %w", files.Path(name), err)
	}
	defer rc.Close()

	return scanLines(rc, func(line []byte) bool {
		e, err := entry.Parse(line)
		if err != nil {
			return true
		}
		return fn(e)
	})
}

// ageSplit holds the serialized records on either side of a cutoff.
type ageSplit struct {
	kept    [][]byte
	evicted [][]byte
}

// splitByAge partitions the dated records of name around cutoff. Records
// without a usable timestamp land in neither half. exists is false when the
// file is absent.
func splitByAge(files *atomicFiles, name string, cutoff time.Time) (split ageSplit, exists bool, err error) {
	rc, err := files.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return split, false, nil
		}
		return split, false, fmt.Errorf("store: open %s: %w", files.Path(name), err)
	}
	defer rc.Close()

	err = scanLines(rc, func(line []byte) bool {
		e, err := entry.Parse(line)
		if err != nil || !e.Dated() {
			return true
		}
		if e.Timestamp.Before(cutoff) {
			split.evicted = append(split.evicted, e.Line())
		} else {
			split.kept = append(split.kept, e.Line())
		}
		return true
	})
	if err != nil {
		return ageSplit{}, true, fmt.Errorf("store: read %s: %w", files.Path(name), err)
	}
	return split, true, nil
}

func joinLines(lines [][]byte) []byte {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// appendLines appends newline-terminated lines to path and syncs the file.
// A torn last line left by a crash is terminated first so the new records
// stay parseable.
func appendLines(path string, lines [][]byte) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("store: ensure directory: %w", err)
	}
	if len(lines) == 0 {
		return nil
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("store: open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("store: close %s: %w", path, cerr)
		}
	}()

	var buf bytes.Buffer
	torn, err := missingNewline(f)
	if err != nil {
		return fmt.Errorf("store: inspect %s: %w", path, err)
	}
	if torn {
		buf.WriteByte('\n')
	}
	buf.Write(joinLines(lines))

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("store: append %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("store: sync %s: %w", path, err)
	}
	return nil
}

// missingNewline reports whether f is non-empty and does not end in '\n'.
func missingNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] != '\n', nil
}

// renderText formats every readable record of name, one per line.
func (l *logFile) renderText(empty, failure string) string {
	var lines []string
	err := forEachEvent(l.files, l.name, func(e *entry.Event) bool {
		if text, ok := e.Text(); ok {
			lines = append(lines, text)
		}
		return true
	})
	if err != nil {
		l.logger.Error("failed to read log file", "path", l.Path(), "err", err)
		return failure
	}
	if len(lines) == 0 {
		return empty
	}
	return strings.Join(lines, "\n")
}
