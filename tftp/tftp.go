package tftp

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	tftp "github.com/pin/tftp/v3"

	"httpsd/docroot"
)

func serveFile(root *docroot.Root, filename string, rf io.ReaderFrom) error {
	res, f, fi, err := root.Open(strings.TrimSpace(filename))
	if err != nil {
		if docroot.IsNotFound(err) {
			return fmt.Errorf("file not found: %s", filename)
		}
		return err
	}
	defer f.Close()
	if t, ok := rf.(tftp.OutgoingTransfer); ok {
		t.SetSize(fi.Size())
	}
	if _, err := rf.ReadFrom(f); err != nil {
		return &docroot.IOError{Path: res.Path, Err: err}
	}
	return nil
}

func newReadHandler(root *docroot.Root, logger *log.Logger) func(string, io.ReaderFrom) error {
	return func(filename string, rf io.ReaderFrom) error {
		err := serveFile(root, filename, rf)
		if logger != nil {
			if err != nil {
				logger.Printf("RRQ %q: %v", filename, err)
			} else {
				logger.Printf("RRQ %q ok", filename)
			}
		}
		return err
	}
}

// StartTFTPServer serves files beneath root read-only. Write requests are refused.
func StartTFTPServer(addr string, root *docroot.Root, logger *log.Logger) (*tftp.Server, error) {
	if addr == "" {
		addr = ":69"
	}
	srv := tftp.NewServer(newReadHandler(root, logger), nil)
	srv.SetTimeout(5 * time.Second)

	go func() {
		if logger != nil {
			logger.Printf("TFTP server listening on %s, root=%q", addr, root.Dir())
		}
		if err := srv.ListenAndServe(addr); err != nil {
			if logger != nil {
				logger.Printf("TFTP server error: %v", err)
			}
		}
	}()
	return srv, nil
}
