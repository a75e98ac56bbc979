package dialer

import (
	"context"
	"net"
)

// Dialers handle pretty much everything related to the actual connection:
// resolving the endpoint once when a transport is configured, and opening
// a fresh stream for every call.
type Dialer interface {
	// Resolve returns the candidate addresses of host, in preference order.
	Resolve(ctx context.Context, host string, port uint16) ([]*net.TCPAddr, error)
	// Dial opens a new TCP connection to addr. implementations must respect
	// the deadline of ctx.
	Dial(ctx context.Context, addr *net.TCPAddr) (net.Conn, error)
}

type CoreDialer struct {
	ResolveConfig *ResolveConfig
}

func (d *CoreDialer) Clone() *CoreDialer {
	return &CoreDialer{
		ResolveConfig: d.ResolveConfig.Clone(),
	}
}
