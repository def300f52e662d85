package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/http"

	"httpsd/utils"
)

func loadTLSConfig(certFile, keyFile string) (*tls.Config, error) {
	pair, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("load key pair: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{pair},
		NextProtos:   []string{"http/1.1"},
	}, nil
}

// servingURL is the base URL for host using the port ln actually bound,
// which differs from the requested one when port 0 was asked for.
func servingURL(host string, ln net.Listener) (string, error) {
	port, err := utils.Port(ln.Addr().String())
	if err != nil {
		return "", err
	}
	addr, err := utils.JoinHostPort(host, port)
	if err != nil {
		return "", err
	}
	return "https://" + addr, nil
}

// StartHTTPSServer loads the key pair, binds addr and serves handler over
// TLS in the background. Errors loading TLS material or binding are returned
// before anything is served.
func StartHTTPSServer(addr, certFile, keyFile string, handler http.Handler, logger *log.Logger) (net.Listener, error) {
	cfg, err := loadTLSConfig(certFile, keyFile)
	if err != nil {
		return nil, err
	}
	ln, err := utils.ListenTCP(context.Background(), addr)
	if err != nil {
		return nil, err
	}
	tlsLn := tls.NewListener(ln, cfg)

	srv := &http.Server{
		Handler:   handler,
		TLSConfig: cfg,
		// Non-nil and empty: no HTTP/2
		TLSNextProto: map[string]func(*http.Server, *tls.Conn, http.Handler){},
		ErrorLog:     logger,
	}
	go func() {
		if logger != nil {
			logger.Printf("https server listening on %s", ln.Addr())
		}
		if err := srv.Serve(tlsLn); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Printf("https serve error: %v", err)
			}
		}
	}()
	return tlsLn, nil
}
