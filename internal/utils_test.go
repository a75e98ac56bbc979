package internal_test

import (
	"bufio"
	"context"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/frankli0324/go-jsonrpc/internal/dialer"
	"github.com/frankli0324/go-jsonrpc/internal/model"
)

// PipeDialer hands out in-memory connections. the server side reads one
// request, sends it to Requests and answers with Response, which may
// contain %ID% to be replaced by the id of the request.
type PipeDialer struct {
	dialer.CoreDialer
	Response string
	Requests chan []byte
}

func NewPipeDialer(response string) *PipeDialer {
	return &PipeDialer{Response: response, Requests: make(chan []byte, 1)}
}

// Dial implements dialer.Dialer.
func (d *PipeDialer) Dial(ctx context.Context, addr *net.TCPAddr) (net.Conn, error) {
	client, server := net.Pipe()
	go d.serve(server)
	return client, nil
}

func (d *PipeDialer) serve(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	var raw []byte
	length := 0
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		raw = append(raw, line...)
		if line == "\r\n" {
			break
		}
		if v, ok := strings.CutPrefix(line, "Content-Length: "); ok {
			length, _ = strconv.Atoi(strings.TrimSpace(v))
		}
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return
	}
	d.Requests <- append(raw, body...)

	var req model.Request
	var id string
	if err := json.Unmarshal(body, &req); err == nil {
		id = string(req.ID)
	}
	io.WriteString(conn, strings.ReplaceAll(d.Response, "%ID%", id))
}
