package model

import (
	"strconv"
)

type ErrorKind int

const (
	// ErrTransport wraps any failure of the underlying transport
	ErrTransport ErrorKind = iota
	// ErrJSON is a payload encoding or decoding failure
	ErrJSON
	// ErrRPC carries the error object returned by the server
	ErrRPC
	ErrNonceMismatch
	ErrVersionMismatch
	ErrEmptyBatch
	ErrWrongBatchResponseSize
	ErrBatchDuplicateResponseID
	ErrWrongBatchResponseID
)

var kindNames = [...]string{
	ErrTransport:                "transport error",
	ErrJSON:                     "JSON error",
	ErrRPC:                      "RPC error response",
	ErrNonceMismatch:            "nonce of response did not match nonce of request",
	ErrVersionMismatch:          "JSON-RPC version mismatch",
	ErrEmptyBatch:               "batch request was empty",
	ErrWrongBatchResponseSize:   "too many responses returned in batch",
	ErrBatchDuplicateResponseID: "batch response contained a duplicate ID",
	ErrWrongBatchResponseID:     "batch response contained an ID that didn't correspond to any request ID",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// Error is returned by [Client] and by transports at their boundary with it.
type Error struct {
	Kind ErrorKind
	Err  error
	ID   []byte // offending response id, set for batch id errors
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return e.Kind.String() + ": " + e.Err.Error()
	case e.ID != nil:
		return e.Kind.String() + ": " + string(e.ID)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, so that errors.Is(err, &Error{Kind: k}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Err == nil && t.ID == nil
}
