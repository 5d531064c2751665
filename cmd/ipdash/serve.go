package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ipdash/internal/config"
	"ipdash/internal/ipinfo"
	"ipdash/internal/log"
	"ipdash/internal/models"
	"ipdash/internal/probe"
	"ipdash/internal/web"
)

// runServe wires the components together and runs the server until a
// shutdown signal arrives.
func runServe(ctx context.Context) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.Configure(log.Config{Level: cfg.LogLevel})
	logger := log.WithComponent("main")

	prober, err := probe.New(cfg.Targets(), cfg.ProbeTimeout, cfg.ProbeDomain)
	if err != nil {
		return err
	}

	provider, closeProvider, err := buildProvider(cfg)
	if err != nil {
		return err
	}
	if closeProvider != nil {
		defer closeProvider()
	}

	server := web.New(prober, provider, cfg.ListenAddr, staticFiles)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	logger.Info().
		Str("addr", cfg.ListenAddr).
		Int("resolvers", len(prober.Targets())).
		Msg("dashboard started")

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildProvider selects the IP metadata source: local GeoLite2 databases
// when both paths are configured, the upstream API otherwise.
func buildProvider(cfg *config.Config) (models.IPProvider, func(), error) {
	if cfg.GeoIPCityPath != "" && cfg.GeoIPASNPath != "" {
		geo, err := ipinfo.NewGeoIP(cfg.GeoIPCityPath, cfg.GeoIPASNPath)
		if err != nil {
			return nil, nil, err
		}
		return geo, func() { _ = geo.Close() }, nil
	}
	if cfg.IPInfoURL != "" {
		return ipinfo.NewUpstream(cfg.IPInfoURL, cfg.ProbeTimeout), nil, nil
	}
	return nil, nil, nil
}
