package config

import (
	"fmt"
	"strings"
	"time"

	"ipdash/internal/models"
)

// Config holds all configuration for the dashboard server.
type Config struct {
	ListenAddr      string        `env:"IPDASH_LISTEN_ADDR" envDefault:":8080"`
	ProbeTimeout    time.Duration `env:"IPDASH_PROBE_TIMEOUT" envDefault:"5s"`
	ProbeDomain     string        `env:"IPDASH_PROBE_DOMAIN" envDefault:"example.com."`
	Resolvers       string        `env:"IPDASH_RESOLVERS"`
	IPInfoURL       string        `env:"IPDASH_IPINFO_URL"`
	GeoIPCityPath   string        `env:"IPDASH_GEOIP_CITY_PATH"`
	GeoIPASNPath    string        `env:"IPDASH_GEOIP_ASN_PATH"`
	LogLevel        string        `env:"IPDASH_LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"IPDASH_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe timeout must be positive")
	}
	if c.ProbeDomain == "" {
		return fmt.Errorf("probe domain cannot be empty")
	}
	if c.IPInfoURL == "" && (c.GeoIPCityPath == "" || c.GeoIPASNPath == "") {
		return fmt.Errorf("either an IP info URL or both GeoIP database paths must be set")
	}
	if c.Resolvers != "" {
		if _, err := ParseTargets(c.Resolvers); err != nil {
			return err
		}
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	return nil
}

// Targets returns the resolver targets configured via IPDASH_RESOLVERS, or
// nil when the built-in registry should be used.
func (c *Config) Targets() []models.Target {
	if c.Resolvers == "" {
		return nil
	}
	targets, err := ParseTargets(c.Resolvers)
	if err != nil {
		return nil
	}
	return targets
}

// ParseTargets parses a "name=url,name=url" resolver list.
func ParseTargets(s string) ([]models.Target, error) {
	var targets []models.Target
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, url, found := strings.Cut(entry, "=")
		if !found || name == "" || url == "" {
			return nil, fmt.Errorf("invalid resolver entry %q, want name=url", entry)
		}
		targets = append(targets, models.Target{Name: name, URL: url})
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("resolver list is empty")
	}
	return targets, nil
}
