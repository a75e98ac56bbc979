// package transport defines the capability a [Client] needs from whatever
// carries its JSON-RPC payloads.
//
// the only implementation shipped is [simplehttp], a deliberately narrow
// HTTP/1.1 subset: one POST per TCP connection, fixed headers, no keep-alive,
// no chunked encoding, no redirects and no TLS. it speaks just enough HTTP for
// RPC servers such as bitcoind.

package transport
