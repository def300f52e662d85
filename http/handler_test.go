package httpx

import (
	"bytes"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"httpsd/docroot"
)

type failOpenFS struct {
	billy.Filesystem
	name string
}

func (f *failOpenFS) Open(filename string) (billy.File, error) {
	if filename == f.name {
		return nil, &os.PathError{Op: "open", Path: filename, Err: fs.ErrPermission}
	}
	return f.Filesystem.Open(filename)
}

func newMemHandler(t *testing.T, files map[string]string) *Handler {
	t.Helper()
	mem := memfs.New()
	for name, data := range files {
		if err := util.WriteFile(mem, name, []byte(data), 0o644); err != nil {
			t.Fatalf("WriteFile %s: %v", name, err)
		}
	}
	return NewHandler(docroot.New(mem), nil)
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func expectResponse(t *testing.T, rec *httptest.ResponseRecorder, status int, contentType, body string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status=%d want=%d", rec.Code, status)
	}
	if got := rec.Header().Get("Content-Type"); got != contentType {
		t.Fatalf("Content-Type=%q want=%q", got, contentType)
	}
	if got := rec.Body.String(); got != body {
		t.Fatalf("body=%q want=%q", got, body)
	}
}

func TestServeRoundTrip(t *testing.T) {
	body := "body { color: red; }\n"
	h := newMemHandler(t, map[string]string{"test.css": body})

	rec := get(h, "/test.css")
	expectResponse(t, rec, http.StatusOK, "text/css", body)
	if len(rec.Header()) != 1 {
		t.Fatalf("only Content-Type expected, got headers %v", rec.Header())
	}
}

func TestServeIndexForRoot(t *testing.T) {
	h := newMemHandler(t, map[string]string{"index.html": "<h1>home</h1>"})
	for _, target := range []string{"/", "//", "/index.html"} {
		expectResponse(t, get(h, target), http.StatusOK, "text/html", "<h1>home</h1>")
	}
}

func TestServeMissingFile(t *testing.T) {
	h := newMemHandler(t, map[string]string{"index.html": "x"})
	expectResponse(t, get(h, "/does-not-exist.xyz"), http.StatusNotFound, "text/plain", "404 Not Found")
}

func TestServeDirectoryIsNotFound(t *testing.T) {
	h := newMemHandler(t, map[string]string{"assets/app.js": "x"})
	expectResponse(t, get(h, "/assets"), http.StatusNotFound, "text/plain", "404 Not Found")
	expectResponse(t, get(h, "/assets/app.js"), http.StatusOK, "application/javascript", "x")
}

func TestServeUnreadableFile(t *testing.T) {
	mem := memfs.New()
	if err := util.WriteFile(mem, "secret.png", []byte("png"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	h := NewHandler(docroot.New(&failOpenFS{Filesystem: mem, name: "secret.png"}), nil)

	rec := get(h, "/secret.png")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want=500", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/plain" {
		t.Fatalf("Content-Type=%q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "Internal Server Error:") {
		t.Fatalf("body=%q", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "permission denied") {
		t.Fatalf("body should carry the failure description: %q", rec.Body.String())
	}
}

func TestServeIdempotent(t *testing.T) {
	h := newMemHandler(t, map[string]string{"app.js": "console.log(1)"})
	a := get(h, "/app.js")
	b := get(h, "/app.js")
	if a.Code != http.StatusOK || b.Code != http.StatusOK {
		t.Fatalf("status a=%d b=%d", a.Code, b.Code)
	}
	if a.Header().Get("Content-Type") != b.Header().Get("Content-Type") {
		t.Fatalf("content types differ")
	}
	if !bytes.Equal(a.Body.Bytes(), b.Body.Bytes()) {
		t.Fatalf("bodies differ")
	}
}

func TestServeRejectsOtherMethods(t *testing.T) {
	h := newMemHandler(t, map[string]string{"index.html": "x"})
	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodHead} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(m, "/index.html", nil))
		if rec.Code != http.StatusNotImplemented {
			t.Fatalf("%s status=%d want=501", m, rec.Code)
		}
	}
}

func TestServeTraversalOnDisk(t *testing.T) {
	dir := t.TempDir()
	www := filepath.Join(dir, "www")
	if err := os.MkdirAll(www, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "passwd"), []byte("root:x:0:0"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(www, "ok.html"), []byte("ok"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	root, err := docroot.Open(www)
	if err != nil {
		t.Fatalf("docroot.Open: %v", err)
	}
	h := NewHandler(root, nil)

	expectResponse(t, get(h, "/ok.html"), http.StatusOK, "text/html", "ok")
	for _, target := range []string{
		"/../passwd",
		"/a/../../passwd",
		"/%2e%2e/passwd",
		"/..%2fpasswd",
	} {
		expectResponse(t, get(h, target), http.StatusNotFound, "text/plain", "404 Not Found")
	}

	resp := h.Serve(http.MethodGet, "../../passwd")
	if resp.Status != http.StatusNotFound || string(resp.Body) != "404 Not Found" {
		t.Fatalf("Serve traversal = %d %q", resp.Status, resp.Body)
	}
}
