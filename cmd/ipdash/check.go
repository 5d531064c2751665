package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ipdash/internal/config"
	"ipdash/internal/probe"
)

// newCheckCmd returns the subcommand that probes every resolver once and
// prints a status table.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Probe all DoH resolvers once and print the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			prober, err := probe.New(cfg.Targets(), cfg.ProbeTimeout, cfg.ProbeDomain)
			if err != nil {
				return err
			}

			results := prober.ProbeAll(cmd.Context())

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RESOLVER\tSTATUS\tLATENCY\tERROR")
			for _, r := range results {
				status := "DOWN"
				if r.OK {
					status = "UP"
				}
				fmt.Fprintf(w, "%s\t%s\t%.1fms\t%s\n", r.Target, status, r.LatencyMs, r.Error)
			}
			return w.Flush()
		},
	}
}
