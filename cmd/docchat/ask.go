// Package main one-shot question command.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joss/docchat/internal/domain"
	"github.com/joss/docchat/internal/render"
)

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask one question against the uploaded documents",
		Long: `Ask a question in the current session. The session's recent turns
are sent along as context and the exchange is persisted, so a later
'docchat' or 'docchat ask' continues the same conversation.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			coord, store, err := newCoordinator()
			if err != nil {
				exitOnError(err)
			}
			defer store.Close()

			ctx := context.Background()
			coord.Restore(ctx)

			ticket, err := coord.BeginAsk(strings.Join(args, " "))
			if err != nil {
				exitOnError(err)
			}
			turn := coord.ResolveAsk(ctx, ticket)

			fmt.Println(turn.Text)
			if groups := domain.GroupCitations(turn.Citations); len(groups) > 0 {
				r := render.New(pretty)
				fmt.Println(r.Sources(groups))
			}
		},
	}
}
