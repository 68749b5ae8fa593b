/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ashenlab/paramforge/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the param browse API server",
	Long: `Start the read-only HTTP API over the loaded param bank: table
listings, per-table row listings, decoded entry fields and Prometheus
metrics on /metrics.

Examples:
  paramforge serve
  paramforge serve --port 9090 --bind 0.0.0.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ok := appFromContext(cmd)
		if !ok {
			return fmt.Errorf("app not found in context")
		}

		cfg := api.ServerConfig{Port: a.cfg.Port, Bind: a.cfg.Bind}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Port = port
		}
		if bind, _ := cmd.Flags().GetString("bind"); bind != "" {
			cfg.Bind = bind
		}

		return api.StartServer(a.bank, cfg, a.log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().String("bind", "", "Address to bind to (overrides config)")
}
