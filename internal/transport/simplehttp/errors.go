package simplehttp

import (
	"strconv"

	"github.com/frankli0324/go-jsonrpc/internal/model"
)

type ErrorKind int

const (
	// KindInvalidURL: the URL given to [Builder.URL] could not be used
	KindInvalidURL ErrorKind = iota
	// KindSocket: dialing, writing or reading the connection failed
	KindSocket
	// KindHTTPParse: the status line of the response is malformed
	KindHTTPParse
	// KindHTTPErrorCode: non-200 status and a body that is not a valid payload
	KindHTTPErrorCode
	// KindTimeout: no usable line arrived before the deadline
	KindTimeout
	// KindJSON: the payload could not be encoded or decoded
	KindJSON
)

// Error is the failure of a single call, or of [Builder.URL]. exactly one
// set of fields is meaningful, selected by Kind:
//
//	KindInvalidURL    URL, Reason
//	KindSocket        Err
//	KindHTTPErrorCode StatusCode
//	KindJSON          Err
type Error struct {
	Kind ErrorKind

	URL    string
	Reason string

	StatusCode int
	Err        error
}

var (
	ErrHTTPParse = &Error{Kind: KindHTTPParse}
	ErrTimeout   = &Error{Kind: KindTimeout}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidURL:
		return "invalid URL '" + e.URL + "': " + e.Reason
	case KindSocket:
		return "couldn't connect to host: " + e.errString()
	case KindHTTPParse:
		return "couldn't parse response header"
	case KindHTTPErrorCode:
		return "unexpected HTTP code: " + strconv.Itoa(e.StatusCode)
	case KindTimeout:
		return "didn't receive response data in time, timed out"
	case KindJSON:
		return "JSON error: " + e.errString()
	}
	return "simplehttp: unknown error kind " + strconv.Itoa(int(e.Kind))
}

func (e *Error) errString() string {
	if e.Err == nil {
		return "<nil>"
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports kind equality against payload-less targets such as [ErrTimeout].
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Kind != e.Kind {
		return false
	}
	return t.Err == nil && t.URL == "" && t.Reason == "" && t.StatusCode == 0
}

func invalidURL(url, reason string) *Error {
	return &Error{Kind: KindInvalidURL, URL: url, Reason: reason}
}

func socketError(err error) *Error {
	return &Error{Kind: KindSocket, Err: err}
}

func httpErrorCode(code int) *Error {
	return &Error{Kind: KindHTTPErrorCode, StatusCode: code}
}

func jsonError(err error) *Error {
	return &Error{Kind: KindJSON, Err: err}
}

// toClientError converts a call failure into the error returned by
// [transport.Transport] implementations. decode failures keep their own
// kind so the client can tell a bad payload from a broken link.
func toClientError(err error) error {
	if e, ok := err.(*Error); ok && e.Kind == KindJSON {
		return &model.Error{Kind: model.ErrJSON, Err: e.Err}
	}
	return &model.Error{Kind: model.ErrTransport, Err: err}
}
