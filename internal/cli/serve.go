package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/rpggio/todolist/internal/mcp"
)

func newServeCmd(flags *globalFlags, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the to-do list to MCP clients over stdio",
		Long: `serve exposes the to-do list as MCP tools on stdin/stdout.

Logs go to stderr, or to log.path when set, so stdout carries only protocol messages.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := openApp(ctx, cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			server := mcp.NewServer(mcp.Config{
				Services: mcp.Services{
					Items:    a.items,
					Activity: a.activity,
				},
				Version: version,
				Logger:  a.logger,
			})

			a.logger.Info("starting stdio transport", "backend", cfg.Store.Backend)
			if err := serve(ctx, server, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && ctx.Err() == nil {
				a.logger.Error("stdio server error", "error", err)
				return err
			}
			a.logger.Info("shutting down")
			return nil
		},
	}
}

func serve(ctx context.Context, server *sdkmcp.Server, in io.Reader, out io.Writer) error {
	if in == os.Stdin && out == os.Stdout {
		return mcp.ServeStdio(ctx, server)
	}
	r, ok := in.(io.ReadCloser)
	if !ok {
		r = io.NopCloser(in)
	}
	w, ok := out.(io.WriteCloser)
	if !ok {
		w = nopWriteCloser{out}
	}
	return mcp.ServeIO(ctx, server, r, w)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
