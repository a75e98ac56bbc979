package internal

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/goccy/go-json"

	"github.com/frankli0324/go-jsonrpc/internal/model"
	"github.com/frankli0324/go-jsonrpc/internal/transport"
	"github.com/frankli0324/go-jsonrpc/internal/transport/simplehttp"
)

type Transport = transport.Transport
type Middleware = transport.Middleware

// Client sends JSON-RPC requests through a [Transport] and checks that
// responses belong to them. It is safe for concurrent use as long as the
// transport is.
type Client struct {
	transport Transport
	nonce     atomic.Uint64
}

func NewClient(t Transport) *Client {
	return &Client{transport: t}
}

// NewSimpleHTTP creates a client using the bare-minimum HTTP transport.
// an empty user means no authentication.
func NewSimpleHTTP(url, user, pass string) (*Client, error) {
	b, err := simplehttp.NewBuilder().URL(url)
	if err != nil {
		return nil, err
	}
	if user != "" {
		b = b.Auth(user, pass)
	}
	return NewClient(b.Build()), nil
}

// Use wraps the transport with mws. The last "Use"d mw executes first.
// Use is not safe to call concurrently with requests.
func (c *Client) Use(mws ...Middleware) {
	for _, mw := range mws {
		c.transport = mw(c.transport)
	}
}

func (c *Client) Transport() Transport {
	return c.transport
}

// BuildRequest creates a request with a fresh id. params are encoded as a
// positional array.
func (c *Client) BuildRequest(method string, params ...interface{}) (*model.Request, error) {
	req := &model.Request{
		JSONRPC: model.Version,
		Method:  method,
		ID:      json.RawMessage(strconv.FormatUint(c.nonce.Add(1), 10)),
	}
	if params == nil {
		params = []interface{}{}
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, &model.Error{Kind: model.ErrJSON, Err: err}
	}
	req.Params = raw
	return req, nil
}

func (c *Client) SendRequest(ctx context.Context, req *model.Request) (*model.Response, error) {
	resp, err := c.transport.SendRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.JSONRPC != "" && resp.JSONRPC != req.JSONRPC {
		return nil, &model.Error{Kind: model.ErrVersionMismatch}
	}
	if !model.SameID(resp.ID, req.ID) {
		return nil, &model.Error{Kind: model.ErrNonceMismatch}
	}
	return resp, nil
}

// SendBatch sends reqs at once. the responses are returned in the order of
// reqs, with nil where the server did not answer a request.
func (c *Client) SendBatch(ctx context.Context, reqs []*model.Request) ([]*model.Response, error) {
	if len(reqs) == 0 {
		return nil, &model.Error{Kind: model.ErrEmptyBatch}
	}
	resps, err := c.transport.SendBatch(ctx, reqs)
	if err != nil {
		return nil, err
	}
	if len(resps) > len(reqs) {
		return nil, &model.Error{Kind: model.ErrWrongBatchResponseSize}
	}

	byID := make(map[string]*model.Response, len(resps))
	for _, resp := range resps {
		if resp == nil {
			continue
		}
		id := string(model.CompactID(resp.ID))
		if _, dup := byID[id]; dup {
			return nil, &model.Error{Kind: model.ErrBatchDuplicateResponseID, ID: resp.ID}
		}
		byID[id] = resp
	}

	ordered := make([]*model.Response, len(reqs))
	for i, req := range reqs {
		id := string(model.CompactID(req.ID))
		ordered[i] = byID[id]
		delete(byID, id)
	}
	for _, resp := range byID {
		return nil, &model.Error{Kind: model.ErrWrongBatchResponseID, ID: resp.ID}
	}
	return ordered, nil
}

// Call invokes method and decodes its result into result, which may be nil
// when the result does not matter.
func (c *Client) Call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	req, err := c.BuildRequest(method, params...)
	if err != nil {
		return err
	}
	resp, err := c.SendRequest(ctx, req)
	if err != nil {
		return err
	}
	if result == nil {
		if resp.Error != nil {
			return &model.Error{Kind: model.ErrRPC, Err: resp.Error}
		}
		return nil
	}
	return resp.Decode(result)
}
