package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fiplan/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve projections over HTTP",
		Long: `Serve the projection API.

Routes:
  GET  /healthz
  POST /v1/projection   (JSON or YAML configuration; ?years=, ?format=, ?template=)
  POST /v1/validate
  GET  /v1/templates
  GET  /v1/profiles, GET|PUT|DELETE /v1/profiles/{name}   (with --profiles)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.NewServer(newEngine(cmd))
			srv.Logger = cliLogger{}

			if profiles, _ := cmd.Flags().GetBool("profiles"); profiles {
				store, closeStore, err := openStore(ctx, cmd)
				if err != nil {
					return err
				}
				defer closeStore()
				srv.Store = store
			}

			addr, _ := cmd.Flags().GetString("addr")
			srv.Logger.Infof("listening on %s", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().Bool("profiles", false, "Enable the profile routes")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	addStoreFlags(cmd)
	return cmd
}
