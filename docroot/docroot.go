// Package docroot maps request paths onto a read-only directory tree.
package docroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// IOError reports a failure reading a file that exists beneath the root.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return e.Err.Error() }

func (e *IOError) Unwrap() error { return e.Err }

// Root is a read-only view of a directory. It holds no mutable state and
// is safe for concurrent use.
type Root struct {
	fs  billy.Filesystem
	dir string
}

// Open returns a Root for dir, which is made absolute first.
func Open(dir string) (*Root, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}
	return New(osfs.New(abs, osfs.WithBoundOS())), nil
}

// New returns a Root backed by fs, rooted at fs.Root().
func New(fs billy.Filesystem) *Root {
	return &Root{fs: ReadOnly(fs), dir: filepath.Clean(fs.Root())}
}

// Dir returns the absolute root directory.
func (r *Root) Dir() string { return r.dir }

// Filesystem returns the read-only filesystem the root serves from.
func (r *Root) Filesystem() billy.Filesystem { return r.fs }

// Resolve maps urlPath beneath the root.
func (r *Root) Resolve(urlPath string) (Resolved, error) {
	return Resolve(r.dir, urlPath)
}

// Stat resolves urlPath and checks that it names a regular file.
// Every failure is reported as ErrNotFound.
func (r *Root) Stat(urlPath string) (Resolved, os.FileInfo, error) {
	res, err := r.Resolve(urlPath)
	if err != nil {
		return res, nil, err
	}
	fi, err := r.fs.Stat(res.Rel)
	if err != nil {
		return res, nil, fmt.Errorf("stat %s: %w", res.Rel, ErrNotFound)
	}
	if !fi.Mode().IsRegular() {
		return res, nil, fmt.Errorf("%s is not a regular file: %w", res.Rel, ErrNotFound)
	}
	return res, fi, nil
}

// Open resolves urlPath and opens it for reading. The caller closes the file.
func (r *Root) Open(urlPath string) (Resolved, billy.File, os.FileInfo, error) {
	res, fi, err := r.Stat(urlPath)
	if err != nil {
		return res, nil, nil, err
	}
	f, err := r.fs.Open(res.Rel)
	if err != nil {
		return res, nil, nil, &IOError{Path: res.Path, Err: err}
	}
	return res, f, fi, nil
}

// ReadFile resolves urlPath and reads the whole file.
func (r *Root) ReadFile(urlPath string) (Resolved, []byte, error) {
	res, _, err := r.Stat(urlPath)
	if err != nil {
		return res, nil, err
	}
	data, err := util.ReadFile(r.fs, res.Rel)
	if err != nil {
		return res, nil, &IOError{Path: res.Path, Err: err}
	}
	return res, data, nil
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
