package dialer

import (
	"context"
	"net"
)

var zeroDialer net.Dialer

func (d *CoreDialer) Dial(ctx context.Context, addr *net.TCPAddr) (net.Conn, error) {
	network := "tcp"
	if d.ResolveConfig != nil {
		if d.ResolveConfig.Network == "ip4" {
			network = "tcp4"
		} else if d.ResolveConfig.Network == "ip6" {
			network = "tcp6"
		}
	}
	return zeroDialer.DialContext(ctx, network, addr.String())
}
