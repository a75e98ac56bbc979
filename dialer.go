package jsonrpc

import (
	"github.com/frankli0324/go-jsonrpc/internal/dialer"
)

type Dialer = dialer.Dialer
type CoreDialer = dialer.CoreDialer
type ResolveConfig = dialer.ResolveConfig
