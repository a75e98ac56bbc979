package transport

import (
	"context"

	"github.com/frankli0324/go-jsonrpc/internal/model"
)

//go:generate mockgen -source=transport.go -destination=mocks/transport_mock.go -package=mock_transport

// Transport sends JSON-RPC payloads to a server and returns what it answered.
// errors returned should be *[model.Error] values.
type Transport interface {
	SendRequest(ctx context.Context, req *model.Request) (*model.Response, error)
	SendBatch(ctx context.Context, reqs []*model.Request) ([]*model.Response, error)
	// Target describes the endpoint, for logs and metrics
	Target() string
}

// Middleware decorates a Transport.
type Middleware func(next Transport) Transport
