package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/frankli0324/go-jsonrpc/internal/model"
	"github.com/frankli0324/go-jsonrpc/internal/transport"
)

type rateLimitTransport struct {
	next    transport.Transport
	limiter *rate.Limiter
}

// RateLimit delays exchanges so that they don't exceed limiter. a batch
// counts as one exchange since it uses one connection. waiting honors ctx;
// a canceled wait is reported as a transport error.
func RateLimit(limiter *rate.Limiter) transport.Middleware {
	return func(next transport.Transport) transport.Transport {
		return &rateLimitTransport{next: next, limiter: limiter}
	}
}

func (t *rateLimitTransport) Target() string {
	return t.next.Target()
}

func (t *rateLimitTransport) SendRequest(ctx context.Context, req *model.Request) (*model.Response, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, &model.Error{Kind: model.ErrTransport, Err: err}
	}
	return t.next.SendRequest(ctx, req)
}

func (t *rateLimitTransport) SendBatch(ctx context.Context, reqs []*model.Request) ([]*model.Response, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, &model.Error{Kind: model.ErrTransport, Err: err}
	}
	return t.next.SendBatch(ctx, reqs)
}
