package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/labsite/labsite/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pages and JSON API over HTTP",
	Long: `Serve the people and publications pages, re-rendered from freshly
loaded resources on every request.

Routes:
  GET /people
  GET /publications?sort=&q=
  GET /api/people
  GET /api/publications?sort=&q=
  GET /api/health
  GET /resources/*   (local resource roots only)

Examples:
  labsite serve
  labsite serve --addr 127.0.0.1:3000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	opts := server.Options{AssetBase: cfg.BaseURL}
	if cfg.IsRemote() {
		if opts.AssetBase == "" {
			opts.AssetBase = strings.TrimRight(cfg.Resources, "/") + "/"
		}
	} else {
		opts.ResourceDir = cfg.Resources
	}

	return server.New(newLoader(cfg), opts).ListenAndServe(cmd.Context(), addr, cfg.Server.ReadTimeout())
}
