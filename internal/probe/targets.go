package probe

import "ipdash/internal/models"

// DefaultTargets returns the built-in registry of public DoH resolvers.
// The order is the order results are reported in.
func DefaultTargets() []models.Target {
	return []models.Target{
		{Name: "google", URL: "https://dns.google/dns-query"},
		{Name: "cloudflare", URL: "https://cloudflare-dns.com/dns-query"},
		{Name: "quad9", URL: "https://dns.quad9.net/dns-query"},
		{Name: "adguard", URL: "https://dns.adguard-dns.com/dns-query"},
		{Name: "opendns", URL: "https://doh.opendns.com/dns-query"},
	}
}
