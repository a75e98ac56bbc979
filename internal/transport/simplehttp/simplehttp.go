// package simplehttp implements a minimal and non standard conforming
// HTTP/1.1 round-tripper for JSON-RPC servers such as bitcoind. it opens one
// TCP connection per call, writes a single POST and expects the JSON answer
// on one line after the header block.
package simplehttp

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/frankli0324/go-jsonrpc/internal/dialer"
	"github.com/frankli0324/go-jsonrpc/internal/model"
)

const (
	// DefaultPort is the default RPC port of bitcoind.
	DefaultPort uint16 = 8332
	// DefaultTimeout bounds a whole call, from dialing to the last byte read.
	DefaultTimeout = 15 * time.Second
)

var defaultDialer = &dialer.CoreDialer{}

// Transport is the immutable endpoint configuration. copies are independent,
// and a single value may serve concurrent calls since each call dials its
// own connection. the zero value behaves like [New].
type Transport struct {
	addr    *net.TCPAddr
	path    string
	timeout time.Duration
	// value of the Authorization header, empty for none
	basicAuth string

	dialer dialer.Dialer
}

// New returns a Transport for http://127.0.0.1:8332/ without authentication.
func New() Transport {
	return Transport{
		addr:    &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: int(DefaultPort)},
		path:    "/",
		timeout: DefaultTimeout,
		dialer:  defaultDialer,
	}
}

// orDefault fills the fields left unset in a zero Transport.
func (t Transport) orDefault() Transport {
	def := New()
	if t.addr == nil {
		t.addr = def.addr
	}
	if t.path == "" {
		t.path = def.path
	}
	if t.timeout <= 0 {
		t.timeout = def.timeout
	}
	if t.dialer == nil {
		t.dialer = def.dialer
	}
	return t
}

func (t Transport) Addr() *net.TCPAddr {
	a := *t.orDefault().addr
	return &a
}

func (t Transport) Path() string { return t.orDefault().path }

func (t Transport) Timeout() time.Duration { return t.orDefault().timeout }

func (t Transport) Authorization() (string, bool) {
	return t.basicAuth, t.basicAuth != ""
}

func (t Transport) Target() string {
	t = t.orDefault()
	return "http://" + net.JoinHostPort(t.addr.IP.String(), strconv.Itoa(t.addr.Port)) + t.path
}

func (t Transport) SendRequest(ctx context.Context, req *model.Request) (*model.Response, error) {
	resp := &model.Response{}
	if err := t.request(ctx, req, resp); err != nil {
		return nil, toClientError(err)
	}
	return resp, nil
}

func (t Transport) SendBatch(ctx context.Context, reqs []*model.Request) ([]*model.Response, error) {
	var resps []*model.Response
	if err := t.request(ctx, reqs, &resps); err != nil {
		return nil, toClientError(err)
	}
	return resps, nil
}

// request performs one call. out is only meaningful when err is nil.
func (t Transport) request(ctx context.Context, in, out interface{}) error {
	// serialize the body first so we can set the Content-Length header
	body, err := json.Marshal(in)
	if err != nil {
		return jsonError(err)
	}

	t = t.orDefault()
	deadline := time.Now().Add(t.timeout)
	dialCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()
	conn, err := t.dialer.Dial(dialCtx, t.addr)
	if err != nil {
		return socketError(err)
	}
	defer conn.Close()
	if err := conn.SetDeadline(deadline); err != nil {
		return socketError(err)
	}

	if err := t.write(conn, body); err != nil {
		return socketError(err)
	}
	return t.read(bufio.NewReader(conn), deadline, out)
}

// write sends the whole request, e.g.:
//
//	POST /wallet HTTP/1.1\r\n
//	Connection: Close\r\n
//	Content-Type: application/json\r\n
//	Content-Length: 42\r\n
//	Authorization: Basic dXNlcjpwYXNz\r\n
//	\r\n
//	{"jsonrpc":"2.0","method":"getblockcount","id":1}
func (t Transport) write(conn net.Conn, body []byte) error {
	w := bufio.NewWriter(conn) // default bufsize is 4096

	w.WriteString("POST ")
	w.WriteString(t.path)
	w.WriteString(" HTTP/1.1\r\n")

	w.WriteString("Connection: Close\r\n")
	w.WriteString("Content-Type: application/json\r\n")
	w.WriteString("Content-Length: ")
	w.WriteString(strconv.Itoa(len(body)))
	w.WriteString("\r\n")
	if t.basicAuth != "" {
		w.WriteString("Authorization: ")
		w.WriteString(t.basicAuth)
		w.WriteString("\r\n")
	}
	w.WriteString("\r\n")
	if _, err := w.Write(body); err != nil {
		return err
	}
	return w.Flush()
}

func (t Transport) read(r *bufio.Reader, deadline time.Time, out interface{}) error {
	status, err := readLine(r, deadline)
	if err != nil {
		return err
	}
	code, ok := parseStatusLine(status)
	if !ok {
		return ErrHTTPParse
	}

	// skip response header fields
	for {
		line, err := readLine(r, deadline)
		if err != nil {
			return err
		}
		if line == "\r\n" {
			break
		}
	}

	// even if it's not 200, the body may hold a JSON-RPC error which says
	// more than the status code does
	line, err := readLine(r, deadline)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(line), out); err != nil {
		if code != 200 {
			return httpErrorCode(code)
		}
		return jsonError(err)
	}
	return nil
}

// parseStatusLine extracts the code of a status line like
// "HTTP/1.1 200 OK\r\n". only the version prefix and the three digits at
// offset 9 are checked.
func parseStatusLine(line string) (int, bool) {
	if len(line) < 12 || !strings.HasPrefix(line, "HTTP/1.1 ") {
		return 0, false
	}
	code := 0
	for _, c := range line[9:12] {
		if c < '0' || c > '9' {
			return 0, false
		}
		code = code*10 + int(c-'0')
	}
	return code, true
}
