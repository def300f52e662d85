package utils

import (
	"context"
	"net"
)

// ListenTCP binds addr with SO_REUSEADDR set where the platform supports it,
// so a restarted server can rebind while old connections sit in TIME_WAIT.
func ListenTCP(ctx context.Context, addr string) (net.Listener, error) {
	lc := net.ListenConfig{Control: reuseAddr}
	return lc.Listen(ctx, "tcp", addr)
}
