// Package cli implements the jsonrpc-cli command: it calls a single method
// on a JSON-RPC server and prints the result.
package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/frankli0324/go-jsonrpc/internal"
	"github.com/frankli0324/go-jsonrpc/internal/config"
	"github.com/frankli0324/go-jsonrpc/internal/logger"
	"github.com/frankli0324/go-jsonrpc/internal/middleware"
	"github.com/frankli0324/go-jsonrpc/internal/transport/simplehttp"
)

// NewRootCommand builds the command tree. it holds no global state so it can
// be executed several times, e.g. from tests.
func NewRootCommand() *cobra.Command {
	var configFilename string

	cmd := &cobra.Command{
		Use:   "jsonrpc-cli [flags] <method> [params...]",
		Short: "Call a method on a JSON-RPC server.",
		Long: `jsonrpc-cli sends a single JSON-RPC request over a minimal HTTP transport
and prints the result.

Each param is parsed as a JSON value; anything that isn't valid JSON is sent as a string:

  jsonrpc-cli -u http://127.0.0.1:18443/ --cookie-file ~/.bitcoin/regtest/.cookie getblockhash 0`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFilename)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			bindFlagsToConfig(cmd.Flags(), cfg)

			if err = config.ValidateConfig(cfg); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger.SetLevel(cfg.ParsedLogLevel)

			return run(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], parseParams(args[1:]))
		},
	}

	cmd.PersistentFlags().StringVarP(&configFilename, "config", "c", "",
		fmt.Sprintf("path to the configuration file (default is '%s' if present)", config.DefaultConfigFilename))

	flags := cmd.Flags()
	flags.StringP("url", "u", "", "server URL, e.g. http://127.0.0.1:8332/wallet/name")
	flags.String("user", "", "user for basic authentication")
	flags.String("password", "", "password for basic authentication")
	flags.String("cookie-file", "", "read basic authentication credentials from this file")
	flags.DurationP("timeout", "t", 0, "deadline of the whole call, e.g. 30s")
	flags.Float64("rate-limit", 0, "maximum calls per second")
	flags.StringP("output", "o", "", "result format: json or yaml")
	flags.String("log-level", "", "log level: debug, info, warn, error")

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := NewRootCommand().ExecuteContext(ctx)

	stop()

	_ = logger.Logger().Sync()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bindFlagsToConfig overrides file settings with the flags that were set.
func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) {
	stringFlags := map[string]*string{
		"url":         &cfg.URL,
		"user":        &cfg.User,
		"password":    &cfg.Password,
		"cookie-file": &cfg.CookieFile,
		"output":      &cfg.Output,
		"log-level":   &cfg.LogLevel,
	}
	for name, dst := range stringFlags {
		if flag := flags.Lookup(name); flag != nil && flag.Changed {
			*dst = flag.Value.String()
		}
	}

	if flag := flags.Lookup("timeout"); flag != nil && flag.Changed {
		cfg.Timeout = flag.Value.String()
	}

	if flag := flags.Lookup("rate-limit"); flag != nil && flag.Changed {
		cfg.RateLimit, _ = flags.GetFloat64("rate-limit")
	}
}

// parseParams keeps valid JSON values as they are and quotes anything else.
func parseParams(args []string) []interface{} {
	params := make([]interface{}, len(args))
	for i, arg := range args {
		if json.Valid([]byte(arg)) {
			params[i] = json.RawMessage(arg)
		} else {
			params[i] = arg
		}
	}
	return params
}

func newClient(cfg *config.Config) (*internal.Client, error) {
	b, err := simplehttp.NewBuilder().Timeout(cfg.ParsedTimeout).URL(cfg.URL)
	if err != nil {
		return nil, err
	}
	switch {
	case cfg.Cookie != "":
		b = b.CookieAuth(cfg.Cookie)
	case cfg.User != "":
		b = b.Auth(cfg.User, cfg.Password)
	}

	client := internal.NewClient(b.Build())
	if cfg.RateLimit > 0 {
		client.Use(middleware.RateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)))
	}
	client.Use(middleware.Logging())
	return client, nil
}

func run(ctx context.Context, out io.Writer, cfg *config.Config, method string, params []interface{}) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	var result json.RawMessage
	if err := client.Call(ctx, method, params, &result); err != nil {
		return err
	}

	return printResult(out, result, cfg.Output)
}

// printResult writes result as indented JSON, or as YAML in block style.
// both keep scalars exactly as the server sent them.
func printResult(out io.Writer, result json.RawMessage, format string) error {
	if format == "yaml" {
		var node yaml.Node
		if err := yaml.Unmarshal(result, &node); err != nil {
			return err
		}
		blockStyle(&node)

		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return err
		}
		return enc.Close()
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, result, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(out)
	return err
}

// blockStyle drops the flow and quoting styles of a node parsed from JSON;
// the encoder quotes again whatever would not read back as a string.
func blockStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}
