package middleware

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/frankli0324/go-jsonrpc/internal/logger"
	"github.com/frankli0324/go-jsonrpc/internal/model"
	"github.com/frankli0324/go-jsonrpc/internal/transport"
)

// loggingTransport logs every exchange at debug level and failures at warn
// level. each exchange gets a request_id to correlate its lines.
type loggingTransport struct {
	next transport.Transport
}

func Logging() transport.Middleware {
	return func(next transport.Transport) transport.Transport {
		return &loggingTransport{next: next}
	}
}

func (t *loggingTransport) Target() string {
	return t.next.Target()
}

func (t *loggingTransport) SendRequest(ctx context.Context, req *model.Request) (*model.Response, error) {
	ctx = logger.WithKV(ctx, "request_id", uuid.NewString(), "target", t.next.Target(), "method", req.Method)
	logger.DebugKV(ctx, "Sending request", "size", payloadSize(req))

	startTime := time.Now()
	resp, err := t.next.SendRequest(ctx, req)
	duration := time.Since(startTime)

	if err != nil {
		logger.WarnKV(ctx, "Request failed", "duration", duration, "error", err)
		return nil, err
	}
	logger.DebugKV(ctx, "Received response", "duration", duration, "size", payloadSize(resp))
	return resp, nil
}

func (t *loggingTransport) SendBatch(ctx context.Context, reqs []*model.Request) ([]*model.Response, error) {
	ctx = logger.WithKV(ctx, "request_id", uuid.NewString(), "target", t.next.Target(), "batch", len(reqs))
	logger.DebugKV(ctx, "Sending batch", "size", payloadSize(reqs))

	startTime := time.Now()
	resps, err := t.next.SendBatch(ctx, reqs)
	duration := time.Since(startTime)

	if err != nil {
		logger.WarnKV(ctx, "Batch failed", "duration", duration, "error", err)
		return nil, err
	}
	logger.DebugKV(ctx, "Received batch", "duration", duration, "responses", len(resps), "size", payloadSize(resps))
	return resps, nil
}

// payloadSize is the encoded size of v, only computed when it is logged.
func payloadSize(v interface{}) string {
	if !logger.IsDebugLevel() {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "unknown"
	}
	return humanize.Bytes(uint64(len(b)))
}
