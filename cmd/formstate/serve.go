package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/internal/server"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form session over HTTP",
		Long: `Serve one form session. The page posts field changes, submits and
resets back to the server; GET /state returns the snapshot as JSON and
GET /metrics exposes Prometheus counters.

Examples:
  formstate serve
  formstate serve --addr :3000 --log-level info`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, form, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer form.Close()

			renderer, err := gen.Renderer("html")
			if err != nil {
				return err
			}
			srv, err := server.New(server.Config{
				FormID:   form.ID,
				Chrome:   form.Definition.Chrome(),
				Engine:   form.Engine,
				Renderer: renderer,
				Logger:   opts.logger,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}
