package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"ipdash/internal/models"
)

// newIPCmd returns the subcommand that queries a running server for IP
// metadata and prints it.
func newIPCmd() *cobra.Command {
	var (
		serverURL string
		ip        string
	)

	cmd := &cobra.Command{
		Use:   "ip",
		Short: "Fetch IP metadata from a running ipdash server",
		RunE: func(cmd *cobra.Command, args []string) error {
			reqURL := serverURL + "/api/ip"
			if ip != "" {
				reqURL += "?ip=" + url.QueryEscape(ip)
			}

			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, reqURL, nil)
			if err != nil {
				return err
			}

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return fmt.Errorf("requesting %s: %w", reqURL, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("server returned status %s", resp.Status)
			}

			var info models.IPInfo
			if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
				return fmt.Errorf("decoding response: %w", err)
			}

			fmt.Printf("IP: %s\n", info.IP)
			fmt.Printf("Country: %s (%s)\n", info.Country, info.CountryCode)
			fmt.Printf("City: %s\n", info.City)
			fmt.Printf("Timezone: %s\n", info.Timezone)
			fmt.Printf("ASN: AS%d %s\n", info.ASN, info.ASNOrg)
			fmt.Printf("ISP: %s\n", info.ISP)
			fmt.Printf("Proxy: %v  VPN: %v  Tor: %v  Datacenter: %v\n",
				info.IsProxy, info.IsVPN, info.IsTor, info.IsDatacenter)
			return nil
		},
	}

	cmd.Flags().StringVarP(&serverURL, "server", "s", "http://localhost:8080", "ipdash server URL")
	cmd.Flags().StringVarP(&ip, "ip", "i", "", "IP address to look up (defaults to your own)")
	return cmd
}
