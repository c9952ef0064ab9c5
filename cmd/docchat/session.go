// Package main session commands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joss/docchat/internal/config"
	"github.com/joss/docchat/internal/render"
	"github.com/joss/docchat/internal/session"
)

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session management",
	}

	// docchat session show
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the persisted conversation",
		Run: func(cmd *cobra.Command, args []string) {
			store, key := openStore()
			defer store.Close()

			turns, err := store.Load(context.Background(), key)
			if err != nil {
				exitOnError(err)
			}

			r := render.New(pretty)
			fmt.Print(r.Transcript(turns))
		},
	}

	// docchat session clear
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the persisted conversation",
		Run: func(cmd *cobra.Command, args []string) {
			store, key := openStore()
			defer store.Close()

			if err := store.Clear(context.Background(), key); err != nil {
				exitOnError(err)
			}

			r := render.New(pretty)
			fmt.Println(r.Status(true, fmt.Sprintf("Cleared session %q", key)))
		},
	}

	// docchat session id
	idCmd := &cobra.Command{
		Use:   "id",
		Short: "Show current session identity",
		Run: func(cmd *cobra.Command, args []string) {
			env := config.Get()
			key := sessionKey
			if key == "" {
				key = env.SessionKey
			}
			hostname, _ := os.Hostname()

			fmt.Println("SESSION / CONTEXT")
			fmt.Println()
			fmt.Printf("  Session:  %s\n", key)
			fmt.Printf("  Server:   %s\n", env.ServerURL)
			fmt.Printf("  Database: %s\n", config.GetPaths().Database)
			fmt.Printf("  Host:     %s\n", hostname)
		},
	}

	cmd.AddCommand(showCmd, clearCmd, idCmd)
	return cmd
}

func openStore() (*session.Store, string) {
	env := config.Get()
	paths := config.GetPaths()

	if err := config.EnsureDir(paths.Home); err != nil {
		exitOnError(err)
	}

	store, err := session.Open(paths.Database)
	if err != nil {
		exitOnError(err)
	}

	key := sessionKey
	if key == "" {
		key = env.SessionKey
	}
	return store, key
}
