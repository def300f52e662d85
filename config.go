package main

import (
	"flag"
	"fmt"
	"io"
)

type config struct {
	ip       string
	port     int
	certFile string
	keyFile  string
	root     string
	tftpAddr string
	nfsAddr  string
}

func parseFlags(args []string, output io.Writer) (*config, error) {
	c := &config{}
	fs := flag.NewFlagSet("httpsd", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&c.ip, "i", "127.0.0.1", "IP address to bind the server")
	fs.StringVar(&c.ip, "ip", "127.0.0.1", "IP address to bind the server")
	fs.IntVar(&c.port, "p", 443, "Port to bind the server")
	fs.IntVar(&c.port, "port", 443, "Port to bind the server")
	fs.StringVar(&c.certFile, "cert", "cert.pem", "TLS certificate file")
	fs.StringVar(&c.keyFile, "key", "key.pem", "TLS private key file")
	fs.StringVar(&c.root, "root", ".", "directory to serve")
	// Optional read-only mirrors of the same root
	fs.StringVar(&c.tftpAddr, "tftp", "", "TFTP listen address (disabled if empty)")
	fs.StringVar(&c.nfsAddr, "nfs", "", "NFS listen address (disabled if empty)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %v", fs.Args())
		fmt.Fprintln(output, err)
		fs.Usage()
		return nil, err
	}
	return c, nil
}
