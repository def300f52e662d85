package utils

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// JoinHostPort validates port and combines it with host into a listen
// address. host may be an IP or a name; names are resolved at bind time.
func JoinHostPort(host string, port int) (string, error) {
	if port < 0 || port > 65535 {
		return "", fmt.Errorf("invalid port %d", port)
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}

// Port extracts the port of addr, which can be ":2049" or "0.0.0.0:2049".
func Port(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		if strings.HasPrefix(addr, ":") {
			p = addr[1:]
		} else {
			return 0, fmt.Errorf("invalid addr %q: %w", addr, err)
		}
	}
	v, err := strconv.Atoi(p)
	if err != nil {
		return 0, fmt.Errorf("invalid port in %q: %w", addr, err)
	}
	return v, nil
}
