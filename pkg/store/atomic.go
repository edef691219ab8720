package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// stagingDir holds in-flight writes. It sits inside the base path so the
// final rename never crosses a filesystem boundary.
const stagingDir = ".tmp"

// atomicFiles replaces whole files under one directory. Every write is staged,
// fsynced and renamed into place, so readers only ever see the old or the new
// content.
type atomicFiles struct {
	d    *diskv.Diskv
	base string
}

func newAtomicFiles(base string) *atomicFiles {
	return &atomicFiles{
		base: base,
		d: diskv.New(diskv.Options{
			BasePath:          base,
			AdvancedTransform: flatTransform,
			InverseTransform:  flatInverseTransform,
			TempDir:           filepath.Join(base, stagingDir),
			PathPerm:          0o755,
			FilePerm:          0o644,
		}),
	}
}

// Write replaces the named file with data.
func (a *atomicFiles) Write(name string, data []byte) error {
	if err := a.d.WriteStream(name, bytes.NewReader(data), true); err != nil {
		return fmt.Errorf("store: atomic write %s: %w", a.Path(name), err)
	}
	return nil
}

// Open streams the named file straight from disk. A missing file yields an
// error satisfying errors.Is(err, fs.ErrNotExist).
func (a *atomicFiles) Open(name string) (io.ReadCloser, error) {
	return a.d.ReadStream(name, true)
}

// Sweep removes staged files left behind by interrupted writes. Only the
// instance lock holder may call it, since a staged file may be in flight.
func (a *atomicFiles) Sweep() error {
	dir := filepath.Join(a.base, stagingDir)
	staged, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: read staging dir: %w", err)
	}
	var errs []error
	for _, e := range staged {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *atomicFiles) Path(name string) string {
	return filepath.Join(a.base, name)
}

// Keys are plain file names directly under the base path.
func flatTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key,
	}
}

func flatInverseTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
