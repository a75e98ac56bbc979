// Command jsonrpc-cli calls a JSON-RPC method over the minimal HTTP transport.
package main

import "github.com/frankli0324/go-jsonrpc/internal/cli"

func main() {
	cli.Execute()
}
