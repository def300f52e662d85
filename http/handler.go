// Package httpx serves files from a document root over HTTP.
package httpx

import (
	"log"
	"net/http"

	"httpsd/docroot"
)

const (
	notFoundBody       = "404 Not Found"
	notImplementedBody = "501 Not Implemented"
	internalErrPrefix  = "Internal Server Error: "
	textPlain          = "text/plain"
)

// Response is the complete reply to one request.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

func textResponse(status int, body string) Response {
	return Response{Status: status, ContentType: textPlain, Body: []byte(body)}
}

// Handler answers GET requests with files beneath a document root.
// It keeps no per-request state.
type Handler struct {
	root   *docroot.Root
	logger *log.Logger
}

// NewHandler returns a Handler serving root. logger may be nil.
func NewHandler(root *docroot.Root, logger *log.Logger) *Handler {
	return &Handler{root: root, logger: logger}
}

// Serve builds the response for method and urlPath.
func (h *Handler) Serve(method, urlPath string) Response {
	if method != http.MethodGet {
		return textResponse(http.StatusNotImplemented, notImplementedBody)
	}
	res, data, err := h.root.ReadFile(urlPath)
	switch {
	case err == nil:
		return Response{Status: http.StatusOK, ContentType: ContentType(res.Path), Body: data}
	case docroot.IsNotFound(err):
		return textResponse(http.StatusNotFound, notFoundBody)
	default:
		if h.logger != nil {
			h.logger.Printf("read %s: %v", res.Path, err)
		}
		return textResponse(http.StatusInternalServerError, internalErrPrefix+err.Error())
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := h.Serve(r.Method, r.URL.Path)

	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.Status)
	n, err := w.Write(resp.Body)
	if h.logger == nil {
		return
	}
	if err != nil {
		h.logger.Printf("%s write error: %v", r.RemoteAddr, err)
	}
	h.logger.Printf("%s %q %d %d", r.RemoteAddr, r.Method+" "+r.RequestURI+" "+r.Proto, resp.Status, n)
}
