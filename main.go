package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"httpsd/docroot"
	httpx "httpsd/http"
	"httpsd/nfs"
	"httpsd/tftp"
	"httpsd/utils"
)

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		// already reported by parseFlags
		os.Exit(2)
	}

	root, err := docroot.Open(cfg.root)
	if err != nil {
		log.Fatalf("open root failure: %v", err)
	}
	addr, err := utils.JoinHostPort(cfg.ip, cfg.port)
	if err != nil {
		log.Fatalf("listen address: %v", err)
	}

	loggerHTTPS := log.New(os.Stdout, "https ", log.LstdFlags)
	ln, err := StartHTTPSServer(addr, cfg.certFile, cfg.keyFile, httpx.NewHandler(root, loggerHTTPS), loggerHTTPS)
	if err != nil {
		log.Fatalf("start https failure: %v", err)
	}
	url, err := servingURL(cfg.ip, ln)
	if err != nil {
		log.Fatalf("listen address: %v", err)
	}
	loggerHTTPS.Printf("Serving %s on %s", root.Dir(), url)

	if cfg.tftpAddr != "" {
		loggerTFTP := log.New(os.Stdout, "tftp ", log.LstdFlags)
		if _, err := tftp.StartTFTPServer(cfg.tftpAddr, root, loggerTFTP); err != nil {
			log.Fatalf("start tftp failure: %v", err)
		}
	}

	if cfg.nfsAddr != "" {
		loggerNFS := log.New(os.Stdout, "nfs ", log.LstdFlags)
		if _, err := nfs.StartNFSD(cfg.nfsAddr, root, loggerNFS); err != nil {
			log.Fatalf("start nfs failure: %v", err)
		}
	}

	// Block until termination signal to keep goroutine servers alive
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.Printf("received signal %s, exiting", sig)
}
