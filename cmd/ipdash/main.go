package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

//go:embed static/*
var staticFiles embed.FS

func main() {
	rootCmd := &cobra.Command{
		Use:   "ipdash",
		Short: "IP metadata and DoH resolver latency dashboard",
		Long: `ipdash serves a small web dashboard that reports a visitor's public IP
metadata (geolocation, network, security flags) and measures round-trip
latency to a set of public DNS-over-HTTPS resolvers.

Run without a subcommand to start the server. Configuration comes from
IPDASH_* environment variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newCheckCmd(), newIPCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
