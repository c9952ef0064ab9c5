// Package main provides the docchat CLI entrypoint.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/joss/docchat/internal/tui"
)

var (
	version    = "0.1.0"
	pretty     = true
	sessionKey string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "docchat",
		Short: "Chat with your uploaded PDF documents",
		Long: `docchat: terminal client for a remote document-QA service.

Usage modes:
  docchat              Start the interactive chat TUI
  docchat <command>    Run a specific command (see below)

Use 'docchat docs list' to show indexed documents.
Use 'docchat help' for the full command list.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal; use 'docchat ask' instead")
				os.Exit(1)
			}
			runInteractive()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "Pretty print output")
	rootCmd.PersistentFlags().StringVar(&sessionKey, "session", "", "Session key (overrides DOCCHAT_SESSION_KEY)")

	rootCmd.AddGroup(
		&cobra.Group{ID: "docs", Title: "Documents:"},
		&cobra.Group{ID: "chat", Title: "Conversation:"},
	)

	docs := docsCmd()
	docs.GroupID = "docs"
	rootCmd.AddCommand(docs)

	ask := askCmd()
	ask.GroupID = "chat"
	rootCmd.AddCommand(ask)

	session := sessionCmd()
	session.GroupID = "chat"
	rootCmd.AddCommand(session)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("docchat %s\n", version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInteractive() {
	coord, store, err := newCoordinator()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	coord.Restore(ctx)
	cancel()

	p := tea.NewProgram(tui.NewChatModel(coord), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}