package nfs

import (
	"log"
	"net"

	gonfs "github.com/willscott/go-nfs"
	nfshelper "github.com/willscott/go-nfs/helpers"

	"httpsd/docroot"
)

// Number of file handles kept by the caching handler.
const handleCacheSize = 1024

// StartNFSD exports root read-only over NFSv3 on a TCP listener.
func StartNFSD(addr string, root *docroot.Root, logger *log.Logger) (net.Listener, error) {
	if addr == "" {
		addr = ":2049"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	handler := nfshelper.NewNullAuthHandler(root.Filesystem())
	cached := nfshelper.NewCachingHandler(handler, handleCacheSize)

	go func() {
		if logger != nil {
			logger.Printf("nfsd v3 listening on %s base=%q", ln.Addr(), root.Dir())
		}
		if err := gonfs.Serve(ln, cached); err != nil {
			if logger != nil {
				logger.Printf("nfsd serve error: %v", err)
			}
		}
	}()
	return ln, nil
}
