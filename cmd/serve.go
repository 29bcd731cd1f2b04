package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/a2a-bridge/pkg/a2a"
	"github.com/theapemachine/a2a-bridge/pkg/bridge"
	"github.com/theapemachine/a2a-bridge/pkg/logging"
	"github.com/theapemachine/a2a-bridge/pkg/service"
)

var (
	version = "0.1.0"

	serveCmd = &cobra.Command{
		Use:          "serve",
		Short:        "Run the MCP to A2A bridge",
		Long:         longServe,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetReportCaller(true)

			if err := logging.Init(viper.GetString("log.file")); err != nil {
				return err
			}

			defer logging.Close()

			client := a2a.NewClient(a2a.WithTimeout(viper.GetDuration("bridge.timeout")))
			defer client.Close()

			b := bridge.New(client)

			if viper.GetBool("server.stdio") {
				log.Info("serving MCP over stdio", "timeout", client.Timeout())
				return service.ServeStdio(service.NewMCPServer(b, version))
			}

			return serveHTTP(cmd.Context(), b)
		},
	}
)

func serveHTTP(ctx context.Context, b *bridge.Bridge) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := service.NewBridgeServer(b, viper.GetString("server.path"))
	addr := fmt.Sprintf("%s:%d", viper.GetString("server.host"), viper.GetInt("server.port"))
	errs := make(chan error, 1)

	go func() {
		errs <- srv.Start(addr)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down bridge")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to shut down: %w", err)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("host", "H", "localhost", "Host address to bind to")
	serveCmd.Flags().IntP("port", "p", 3000, "Port to serve on")
	serveCmd.Flags().Duration("timeout", 30*time.Second, "Timeout for calls to remote agents")
	serveCmd.Flags().Bool("stdio", false, "Serve MCP over stdin/stdout instead of HTTP")
	serveCmd.Flags().String("log-file", "", "Write logs to this file instead of stderr")

	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("bridge.timeout", serveCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("server.stdio", serveCmd.Flags().Lookup("stdio"))
	viper.BindPFlag("log.file", serveCmd.Flags().Lookup("log-file"))
}

var longServe = `
Serve the bridge. By default tool calls are accepted as JSON over HTTP POST on
the configured path; with --stdio the bridge speaks MCP over stdin/stdout.

Examples:
  # Serve on localhost:3000/mcp
  a2a-bridge serve

  # Serve on all interfaces with a shorter agent timeout
  a2a-bridge serve --host 0.0.0.0 --port 8080 --timeout 10s

  # Serve to an MCP client that launches the bridge as a subprocess
  a2a-bridge serve --stdio --log-file /tmp/a2a-bridge.log
`
