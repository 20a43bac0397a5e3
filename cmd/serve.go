package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/arnavsurve/minic/internal/server"
	"github.com/spf13/cobra"
)

var addr string

// serve: POST /analyze over HTTP
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyses over HTTP",
	Args:  cobra.NoArgs,
	RunE:  serveRun,
}

func init() {
	ServeCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
}

func serveRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(addr).ListenAndServe(ctx)
}
