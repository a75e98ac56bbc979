package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/frankli0324/go-jsonrpc/internal/logger"
	"github.com/frankli0324/go-jsonrpc/internal/model"
	mock_transport "github.com/frankli0324/go-jsonrpc/internal/transport/mocks"
)

// observe routes the global logger to memory for the duration of the test.
// tests using it must not run in parallel.
func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	originalLogger, originalLevel := logger.Logger(), logger.Level()
	t.Cleanup(func() {
		logger.SetLogger(originalLogger)
		logger.SetLevel(originalLevel)
	})
	core, logs := observer.New(zapcore.DebugLevel)
	logger.SetLogger(zap.New(core).Sugar())
	logger.SetLevel(zapcore.DebugLevel)
	return logs
}

var req = &model.Request{JSONRPC: "2.0", Method: "getblockcount", ID: json.RawMessage("1")}

func TestLoggingSuccess(t *testing.T) {
	logs := observe(t)

	ctrl := gomock.NewController(t)
	next := mock_transport.NewMockTransport(ctrl)
	next.EXPECT().Target().Return("http://127.0.0.1:8332/").AnyTimes()
	next.EXPECT().SendRequest(gomock.Any(), req).Return(&model.Response{ID: req.ID, Result: json.RawMessage("5")}, nil)

	tp := Logging()(next)
	assert.Equal(t, "http://127.0.0.1:8332/", tp.Target())
	resp, err := tp.SendRequest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "5", string(resp.Result))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	sent, received := entries[0].ContextMap(), entries[1].ContextMap()
	assert.Equal(t, "getblockcount", sent["method"])
	assert.NotEmpty(t, sent["request_id"])
	assert.Equal(t, sent["request_id"], received["request_id"])
	assert.Contains(t, received, "duration")
}

func TestLoggingFailure(t *testing.T) {
	logs := observe(t)

	ctrl := gomock.NewController(t)
	next := mock_transport.NewMockTransport(ctrl)
	next.EXPECT().Target().Return("http://127.0.0.1:8332/").AnyTimes()
	cause := &model.Error{Kind: model.ErrTransport, Err: errors.New("refused")}
	next.EXPECT().SendBatch(gomock.Any(), gomock.Any()).Return(nil, cause)

	resps, err := Logging()(next).SendBatch(context.Background(), []*model.Request{req})
	assert.Nil(t, resps)
	assert.Equal(t, cause, err)

	warned := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warned, 1)
	assert.Equal(t, "Batch failed", warned[0].Message)
	assert.EqualValues(t, 1, warned[0].ContextMap()["batch"])
}
