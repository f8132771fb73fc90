// Package cli holds the xano-mcp command tree.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/xano-labs/xano-mcp-server/internal/app"
	"github.com/xano-labs/xano-mcp-server/internal/config"
	"github.com/xano-labs/xano-mcp-server/internal/logging"
	"github.com/xano-labs/xano-mcp-server/internal/mcp"
	"github.com/xano-labs/xano-mcp-server/internal/protocol"
	"github.com/xano-labs/xano-mcp-server/internal/tools"
	"github.com/xano-labs/xano-mcp-server/internal/version"
)

// ConfigError marks failures that happen before anything is served.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "configuration error: " + e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// IOStreams are the process streams a command talks to.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Execute runs the command tree against the process streams and returns the exit code.
func Execute() int {
	cmd := NewRootCommand(IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "xano-mcp: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCommand builds "xano-mcp". Without a subcommand it serves MCP on stdio.
func NewRootCommand(streams IOStreams) *cobra.Command {
	v := config.NewViper()
	var envFile string

	root := &cobra.Command{
		Use:           "xano-mcp",
		Short:         "MCP server exposing the Xano metadata API as tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return &ConfigError{Err: err}
			}
			return config.BindFlags(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v, streams)
		},
	}
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.ErrOut)

	flags := root.PersistentFlags()
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading XANO_* variables")
	flags.String("api-key", "", "Xano API key (XANO_API_KEY)")
	flags.String("workspace", "", "Xano workspace id (XANO_WORKSPACE)")
	flags.String("api-base", "", "Xano metadata API base URL (XANO_API_BASE)")
	flags.String("auth-scheme", "", "bearer or api-key (XANO_AUTH_SCHEME)")
	flags.String("timeout", "", "per-call timeout, 0 disables (XANO_TIMEOUT)")
	flags.String("log-file", "", "append logs to this file instead of stderr (XANO_LOG_FILE)")
	flags.String("log-level", "", "log level (XANO_LOG_LEVEL)")
	flags.String("http", "", "also serve MCP over HTTP on this address (XANO_MCP_HTTP_ADDR)")

	root.AddCommand(
		newServeCommand(v, streams),
		newToolsCommand(streams),
		newVersionCommand(streams),
	)
	return root
}

func newServeCommand(v *viper.Viper, streams IOStreams) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP on stdio, and on HTTP when --http is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v, streams)
		},
	}
}

func runServe(ctx context.Context, v *viper.Viper, streams IOStreams) error {
	cfg, err := config.Load(v)
	if err != nil {
		return &ConfigError{Err: err}
	}
	log, cleanup, err := logging.New("xano-mcp", logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return &ConfigError{Err: fmt.Errorf("logging: %w", err)}
	}
	defer cleanup()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := app.NewMCPServer(cfg, log)
	log.WithFields(logrus.Fields{
		"workspace": cfg.Workspace,
		"version":   version.Get().Version,
	}).Info("xano mcp server starting")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := mcp.ServeStdio(ctx, server, streams.In, streams.Out)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		log.Info("stdio closed")
		return err
	})
	if cfg.HTTPAddr != "" {
		g.Go(func() error {
			return app.RunMCPHTTP(ctx, server, cfg.HTTPAddr, log)
		})
	}
	return g.Wait()
}

// Manifest lists the served tools without contacting Xano.
type Manifest struct {
	Name    string                    `json:"name"`
	Version string                    `json:"version"`
	Tools   []protocol.ToolDescriptor `json:"tools"`
}

// BuildManifest describes the catalogue. Handlers are never invoked, so no credentials are needed.
func BuildManifest() Manifest {
	tb := app.NewToolbox(tools.Deps{}, logging.Discard())
	return Manifest{Name: mcp.ServerName, Version: version.Get().Version, Tools: tb.Describe()}
}

func newToolsCommand(streams IOStreams) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the tool manifest as JSON",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			raw, err := json.MarshalIndent(BuildManifest(), "", "  ")
			if err != nil {
				return fmt.Errorf("encode manifest: %w", err)
			}
			raw = append(raw, '\n')
			if out == "" {
				_, err = streams.Out.Write(raw)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return fmt.Errorf("write manifest: %w", err)
			}
			fmt.Fprintf(streams.ErrOut, "manifest written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the manifest to this file instead of stdout")
	return cmd
}

func newVersionCommand(streams IOStreams) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(streams.Out, version.Get())
			return err
		},
	}
}
