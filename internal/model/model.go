// package model contains the JSON-RPC values exchanged between a [Client]
// and its transports. transports treat them as opaque payloads: they are
// encoded as-is onto the wire and decoded from whatever the server returns.
package model

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
)

// Version is the protocol version sent by [Client.BuildRequest].
const Version = "2.0"

type Request struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      json.RawMessage `json:"id"`
}

type Response struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

// RPCError is the error object of a JSON-RPC response
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return "rpc error " + strconv.Itoa(e.Code) + ": " + e.Message
}

// Decode unmarshals the result into v. a response carrying an error object
// yields an [ErrRPC] error instead. a missing result decodes as JSON null.
func (r *Response) Decode(v interface{}) error {
	if r.Error != nil {
		return &Error{Kind: ErrRPC, Err: r.Error}
	}
	result := r.Result
	if len(result) == 0 {
		result = json.RawMessage("null")
	}
	if err := json.Unmarshal(result, v); err != nil {
		return &Error{Kind: ErrJSON, Err: err}
	}
	return nil
}

// SameID reports whether two ids are the same JSON value, ignoring whitespace.
func SameID(a, b json.RawMessage) bool {
	return bytes.Equal(CompactID(a), CompactID(b))
}

// CompactID strips insignificant whitespace from id so that ids can be
// compared bytewise. invalid JSON is returned as-is.
func CompactID(id json.RawMessage) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, id); err != nil {
		return id
	}
	return buf.Bytes()
}
