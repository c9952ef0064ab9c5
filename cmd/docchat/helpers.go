package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joss/docchat/internal/api"
	"github.com/joss/docchat/internal/config"
	"github.com/joss/docchat/internal/coordinator"
	"github.com/joss/docchat/internal/session"
)

// newCoordinator wires config, the session store and the API client into a
// coordinator. The caller owns the returned store and must Close it.
func newCoordinator() (*coordinator.Coordinator, *session.Store, error) {
	env := config.Get()
	paths := config.GetPaths()

	if err := config.EnsureDir(paths.Home); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}

	store, err := session.Open(paths.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open session store: %w", err)
	}

	key := sessionKey
	if key == "" {
		key = env.SessionKey
	}

	client := api.New(env.ServerURL, time.Duration(env.TimeoutSecs)*time.Second)
	coord := coordinator.New(client, store, coordinator.Options{
		SessionKey:    key,
		HistoryWindow: env.HistoryWindow,
		SingleFlight:  env.SingleFlight,
	})
	return coord, store, nil
}

// exitOnError prints the error and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
