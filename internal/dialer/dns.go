package dialer

import (
	"context"
	"net"
)

type ResolveConfig struct {
	CustomDNSServer string
	Network         string            // one of "ip4", "ip6", default is "ip"
	StaticHosts     map[string]string // resembles /etc/hosts
}

func (c *ResolveConfig) Clone() *ResolveConfig {
	if c == nil {
		return nil
	}
	hosts := make(map[string]string, len(c.StaticHosts))
	for k, v := range c.StaticHosts {
		hosts[k] = v
	}
	return &ResolveConfig{
		CustomDNSServer: c.CustomDNSServer,
		Network:         c.Network,
		StaticHosts:     hosts,
	}
}

// allows reports whether ip is of the family c.Network restricts to.
func (c *ResolveConfig) allows(ip net.IP) bool {
	if c == nil {
		return true
	}
	switch c.Network {
	case "ip4":
		return ip.To4() != nil
	case "ip6":
		return ip.To4() == nil
	}
	return true
}

// this type should not be used outside this file.
// prevents non-custom DNS server contexts to iterate through all keys
type dnsServerCtx struct {
	context.Context
	server string
}

var dnsServerCtxKey = &dnsServerCtx{nil, "dns-server"} // non-nil pointer to any object, definitely unique

func (c dnsServerCtx) Value(key interface{}) interface{} {
	if key == dnsServerCtxKey {
		return c.server
	}
	return c.Context.Value(key)
}

var customServerResolver = net.Resolver{
	PreferGo: true,
	Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
		if v, ok := ctx.Value(dnsServerCtxKey).(string); ok && v != "" {
			return zeroDialer.DialContext(ctx, network, v)
		}
		return zeroDialer.DialContext(ctx, network, address)
	},
}

// Resolve looks host up following d.ResolveConfig. literal IPs and static
// hosts never hit the resolver.
func (d *CoreDialer) Resolve(ctx context.Context, host string, port uint16) ([]*net.TCPAddr, error) {
	cfg := d.ResolveConfig
	if cfg != nil {
		if static, ok := cfg.StaticHosts[host]; ok {
			host = static
		}
	}
	if ip := net.ParseIP(host); ip != nil {
		if !cfg.allows(ip) {
			return nil, &net.AddrError{Err: "no suitable address found", Addr: host}
		}
		return []*net.TCPAddr{{IP: ip, Port: int(port)}}, nil
	}
	ips, err := d.lookup(ctx, cfg, host)
	if err != nil {
		return nil, err
	}
	addrs := make([]*net.TCPAddr, 0, len(ips))
	for _, ip := range ips {
		addrs = append(addrs, &net.TCPAddr{IP: ip, Port: int(port)})
	}
	if len(addrs) == 0 {
		return nil, &net.DNSError{Err: "no suitable address found", Name: host, IsNotFound: true}
	}
	return addrs, nil
}

func (d *CoreDialer) lookup(ctx context.Context, cfg *ResolveConfig, host string) (result []net.IP, err error) {
	if cfg == nil {
		return net.DefaultResolver.LookupIP(ctx, "ip", host)
	}
	network := cfg.Network
	if network == "" {
		network = "ip"
	}
	if cfg.CustomDNSServer == "" {
		return net.DefaultResolver.LookupIP(ctx, network, host)
	}
	return d.LookupIPServer(ctx, network, host, cfg.CustomDNSServer)
}

// LookupIPServer performs DNS lookup for a host on a custom dns server,
// it calls [net.Resolver.LookupIP] with a Go Resolver behind the scenes.
func (d *CoreDialer) LookupIPServer(ctx context.Context, network, host, dns string) ([]net.IP, error) {
	return customServerResolver.LookupIP(dnsServerCtx{ctx, dns}, network, host)
}
