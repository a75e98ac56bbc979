// Package jsonrpc is a JSON-RPC client with a dependency-light HTTP
// transport, meant for servers such as bitcoind that only need a narrow
// subset of HTTP.
package jsonrpc

import (
	"github.com/frankli0324/go-jsonrpc/internal"
	"github.com/frankli0324/go-jsonrpc/internal/model"
)

type Client = internal.Client
type Request = model.Request
type Response = model.Response
type RPCError = model.RPCError
type Error = model.Error
type ErrorKind = model.ErrorKind

const (
	ErrTransport                = model.ErrTransport
	ErrJSON                     = model.ErrJSON
	ErrRPC                      = model.ErrRPC
	ErrNonceMismatch            = model.ErrNonceMismatch
	ErrVersionMismatch          = model.ErrVersionMismatch
	ErrEmptyBatch               = model.ErrEmptyBatch
	ErrWrongBatchResponseSize   = model.ErrWrongBatchResponseSize
	ErrBatchDuplicateResponseID = model.ErrBatchDuplicateResponseID
	ErrWrongBatchResponseID     = model.ErrWrongBatchResponseID
)

var (
	NewClient     = internal.NewClient
	NewSimpleHTTP = internal.NewSimpleHTTP
)
