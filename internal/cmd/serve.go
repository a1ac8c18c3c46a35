package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/intentcat/internal/config"
	"github.com/rpggio/intentcat/internal/mcp"
	"github.com/spf13/cobra"
)

var serveTransport string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the intent catalog over MCP",
	Long: `Serve recognition and catalog tools over the Model Context Protocol.
The stdio transport is for local clients and never authenticates. The http
transport serves /mcp and /health and checks bearer tokens when
INTENTCAT_AUTH_ENABLED is set.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveTransport, "transport", "", "Transport: stdio or http (overrides INTENTCAT_TRANSPORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	mode := serveTransport
	a, err := openApp(func(cfg config.Config) io.Writer {
		if mode == "" {
			mode = cfg.Transport.Mode
		}
		// Keep stdout clean for JSON-RPC in stdio mode.
		if mode == "stdio" {
			return os.Stderr
		}
		return os.Stdout
	})
	if err != nil {
		return err
	}
	defer a.Close()

	if mode != "stdio" && mode != "http" {
		return fmt.Errorf("unknown transport mode %q", mode)
	}

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Recognition: a.recognition,
			Intents:     a.intents,
			Categories:  a.categories,
			Activity:    a.activity,
		},
		Resolver:      a.apiKeys,
		AuthEnabled:   a.cfg.Auth.Enabled,
		TransportMode: mode,
		DefaultTenant: a.tenantID,
		MinConfidence: a.cfg.Recognition.MinConfidence,
		Version:       Version,
		Logger:        a.logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if mode == "stdio" {
		return runStdio(ctx, a.logger, server)
	}
	return runHTTP(ctx, a.logger, server, fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port))
}

func runStdio(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server) error {
	logger.Info("starting stdio transport", "auth", "disabled")

	// Run blocks until stdin closes or ctx is canceled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTP(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mcp.NewHTTPHandler(server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
