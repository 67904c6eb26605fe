package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"essay-feedback/api/internal/handle"
	"essay-feedback/api/internal/httpserver"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the feedback HTTP API",
	Long: `Start the HTTP API.

Endpoints:
  POST /v1/essay/feedback - evaluate an essay
  GET  /healthz           - liveness check`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if servePort != "" {
			cfg.Port = servePort
		}

		svc, closeFn, err := buildService(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeFn()

		mux := http.NewServeMux()
		handle.New(svc, logger.Named("handle")).Routes(mux)

		srv := httpserver.New(httpserver.Config{
			Addr:         ":" + cfg.Port,
			CORSOrigin:   cfg.CORSOrigin,
			WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		}, mux, logger)
		return httpserver.Run(ctx, srv, logger)
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (overrides PORT)")
}
