package docroot

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// IndexFile is served when the request path is empty or only slashes.
const IndexFile = "index.html"

// ErrNotFound is returned for paths that are missing, not regular files,
// or that would resolve outside the root. Callers must not tell these apart.
var ErrNotFound = errors.New("not found")

// Resolved is a request path mapped beneath a root directory.
type Resolved struct {
	Path string // absolute path on the host
	Rel  string // same file relative to the root
}

// Resolve maps urlPath onto root. Leading and trailing slashes are trimmed,
// an empty result becomes IndexFile, and the remainder is cleaned lexically
// before being joined onto root. A cleaned path may still begin with "..",
// so the joined result is checked to be root itself or a descendant of it.
func Resolve(root, urlPath string) (Resolved, error) {
	p := strings.Trim(urlPath, "/")
	if p == "" {
		p = IndexFile
	}
	p = filepath.Clean(filepath.FromSlash(p))

	root = filepath.Clean(root)
	full := filepath.Join(root, p)
	if !within(root, full) {
		return Resolved{}, fmt.Errorf("%q escapes root: %w", urlPath, ErrNotFound)
	}
	rel, err := filepath.Rel(root, full)
	if err != nil {
		return Resolved{}, fmt.Errorf("%q: %w", urlPath, ErrNotFound)
	}
	return Resolved{Path: full, Rel: rel}, nil
}

func within(root, p string) bool {
	if p == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(p, prefix)
}
