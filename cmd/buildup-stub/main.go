package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bobmcallan/buildup/internal/common"
	"github.com/bobmcallan/buildup/internal/fakeapi"
)

func main() {
	// Resolve config path
	configPath := os.Getenv("BUILDUP_CONFIG")
	if configPath == "" {
		configPath = "buildup.toml"
	}

	common.LoadVersionFromFile()

	srv, config, logger, err := setup(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize stub: %v\n", err)
		os.Exit(1)
	}

	common.PrintBanner(os.Stdout, config, logger)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	common.PrintShutdownBanner(os.Stdout, logger)
}

// setup loads configuration and builds a stub that accepts the configured
// credential pair.
func setup(configPath string) (*fakeapi.Server, *common.Config, *common.Logger, error) {
	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	if missing := config.ValidateRequired(); len(missing) > 0 {
		return nil, nil, nil, fmt.Errorf("missing required settings: %s (set BUILDUP_API_KEY and BUILDUP_API_SECRET)", strings.Join(missing, ", "))
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	api := fakeapi.New(fakeapi.WithLogger(logger))
	if err := api.Register(config.Credentials.Key, config.Credentials.Secret); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to register credentials: %w", err)
	}

	return fakeapi.NewServer(api, config.Stub.Host, config.Stub.Port, logger), config, logger, nil
}
