package dialer

import (
	"github.com/frankli0324/go-jsonrpc/internal/dialer"
)

// Dialers are responsible for resolving the endpoint of a transport and for
// opening the TCP connection of every call.
//
// A Dialer MUST NOT hold connection state: the transport dials a fresh
// connection per call and closes it afterwards, and a Dialer may be shared
// by transports used concurrently.
type Dialer = dialer.Dialer

// CoreDialer is the default implementation of the [Dialer] interface. It would
// be used by a zero value transport.
type CoreDialer = dialer.CoreDialer

// we need a dedicated resolver for two scenarios:
//
//  1. to pin hostnames to addresses without touching /etc/hosts
//  2. to customize the DNS server used for resolving hostname
//
// the standard library didn't provide a intuitive way of
// setting DNS server addresses since it only follows the
// system configuration (e.g. /etc/resolv.conf), leaving us only
// one option of using [net.Resolver.Dial] hook with a Go Resolver.
type ResolveConfig = dialer.ResolveConfig
