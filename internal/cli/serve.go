package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

// serveCommand creates the serve command, exposing the positioning engine
// and the scenario store over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var storeFlags storeOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the positioning engine over HTTP",
		Long: `Serve starts an HTTP server exposing the placement engine and a scenario
store. Scenarios can be solved inline (POST /v1/solve) or stored by ID and
solved later (GET /v1/scenarios/{id}/solve).

The --store flag selects the backend: memory (default), file, redis, or mongo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, storeFlags)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	registerStoreFlags(cmd, &storeFlags)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, storeFlags storeOpts) error {
	st, err := newStore(ctx, storeFlags)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(st, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr, "store", storeFlags.backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
