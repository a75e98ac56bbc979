package simplehttp

import (
	"context"
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/frankli0324/go-jsonrpc/internal/dialer"
)

var schemes = map[string]uint16{
	"http": 80, "https": 443,
}

// Builder assembles a [Transport]. every step takes the builder by value and
// returns the updated copy, so partially built values are never shared:
//
//	b, err := NewBuilder().Timeout(time.Second).URL("http://localhost:8332/wallet")
//	if err != nil { ... }
//	tp := b.Auth("user", "pass").Build()
type Builder struct {
	tp Transport
}

func NewBuilder() Builder {
	return Builder{tp: New()}
}

// Timeout sets the deadline of a whole call, connect included.
func (b Builder) Timeout(timeout time.Duration) Builder {
	b.tp.timeout = timeout
	return b
}

// Dialer replaces the dialer used to resolve [Builder.URL] hosts and to
// connect. set it before calling URL if resolution should go through it.
// a *dialer.CoreDialer is copied, later changes to it don't affect b.
func (b Builder) Dialer(d dialer.Dialer) Builder {
	if cd, ok := d.(*dialer.CoreDialer); ok && cd != nil {
		d = cd.Clone()
	}
	b.tp.dialer = d
	return b
}

// URL points the transport to url, of the form
//
//	[http[s]://][user:pass@]host[:port][/path]
//
// parsing is purely textual: no percent-decoding, no IPv6 literals, and
// userinfo is dropped (use [Builder.Auth] instead). without a port, the
// scheme's default port is used, or [DefaultPort] when there is no scheme.
// on error the receiver is returned unchanged.
func (b Builder) URL(url string) (Builder, error) {
	// the port used when url has none, depends on the scheme
	fallbackPort := DefaultPort

	// (1) split scheme
	afterScheme := url
	if scheme, rest, ok := strings.Cut(url, "://"); ok {
		port, ok := schemes[scheme]
		if !ok {
			return b, invalidURL(url, "scheme should be http or https")
		}
		fallbackPort, afterScheme = port, rest
	}

	// (2) split off path
	beforePath, path := afterScheme, "/"
	if slash := strings.IndexByte(afterScheme, '/'); slash >= 0 {
		beforePath, path = afterScheme[:slash], afterScheme[slash:]
	}

	// (3) split off auth part
	if _, host, ok := strings.Cut(beforePath, "@"); ok {
		beforePath = host
	}

	// (4) now we should have <hostname>:<port> or just <hostname>
	split := strings.Split(beforePath, ":")
	hostname, port := split[0], fallbackPort
	if len(split) > 1 {
		// no sign allowed, "host:+80" is an invalid port
		p, err := strconv.ParseUint(split[1], 10, 16)
		if err != nil {
			return b, invalidURL(url, "invalid port")
		}
		port = uint16(p)
	}
	if len(split) > 2 {
		return b, invalidURL(url, "unexpected extra colon")
	}

	// (5) resolve
	d := b.tp.dialer
	if d == nil {
		d = defaultDialer
	}
	addrs, err := d.Resolve(context.Background(), hostname, port)
	if err != nil || len(addrs) == 0 {
		return b, invalidURL(url, "invalid hostname: error extracting socket address")
	}

	b.tp.addr = addrs[0]
	b.tp.path = path
	return b, nil
}

// Auth sets basic authentication with user and pass. an empty pass is sent
// as "user:". replaces any previous [Builder.CookieAuth].
func (b Builder) Auth(user, pass string) Builder {
	return b.CookieAuth(user + ":" + pass)
}

// CookieAuth sets basic authentication from a cookie string, which is
// expected to already be of the form "user:pass", e.g. the content of
// bitcoind's .cookie file.
func (b Builder) CookieAuth(cookie string) Builder {
	b.tp.basicAuth = "Basic " + base64.StdEncoding.EncodeToString([]byte(cookie))
	return b
}

func (b Builder) Build() Transport {
	return b.tp
}
