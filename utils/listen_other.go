//go:build !unix

package utils

import "syscall"

func reuseAddr(network, address string, c syscall.RawConn) error {
	return nil
}
