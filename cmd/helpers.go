package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"invoicectl/internal/backend"
	"invoicectl/internal/batch"
	"invoicectl/internal/config"
)

// loadRuntime builds the configured backend client. Every command
// constructs its own client instance; base URL and timeout travel with it.
func loadRuntime() (*config.Config, *backend.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	client, err := backend.New(cfg.APIBaseURL,
		backend.WithClientID(cfg.ClientID),
		backend.WithTimeout(cfg.HTTPTimeout),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	return cfg, client, nil
}

// openStore opens the local batch store at the configured path.
func openStore(cfg *config.Config) (*batch.BoltStore, error) {
	store, err := batch.NewBoltStore(cfg.BatchDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch store: %w", err)
	}
	return store, nil
}

// commandContext creates a context canceled on SIGINT/SIGTERM so an
// in-flight backend call can be abandoned cleanly.
func commandContext(log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to create JSON output: %w", err)
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}
