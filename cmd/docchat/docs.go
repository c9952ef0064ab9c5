// Package main document commands.
package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/joss/docchat/internal/api"
	"github.com/joss/docchat/internal/config"
	"github.com/joss/docchat/internal/render"
)

func docsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Document commands",
		Long:  "List, upload, delete and summarize indexed documents",
	}

	// docchat docs list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show indexed documents",
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			docs, err := client.ListDocuments(context.Background())
			if err != nil {
				exitOnError(err)
			}

			r := render.New(pretty)
			fmt.Print(r.Documents(docs))
		},
	}

	// docchat docs upload <glob...>
	uploadCmd := &cobra.Command{
		Use:   "upload [pattern...]",
		Short: "Upload PDFs matching the given paths or globs",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			files, err := api.CollectFiles(args...)
			if err != nil {
				exitOnError(err)
			}
			if len(files) == 0 {
				exitOnError(fmt.Errorf("no files matched"))
			}

			client := newClient()
			result, err := client.Upload(context.Background(), files)
			if err != nil {
				exitOnError(err)
			}

			r := render.New(pretty)
			msg := result.Message
			if msg == "" {
				msg = fmt.Sprintf("Uploaded %d file(s)", len(files))
			}
			fmt.Println(r.Status(true, fmt.Sprintf("%s (%d chunks, %.1fs)",
				msg, result.Chunks, result.TimeTaken)))
		},
	}

	// docchat docs delete <id>
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a document by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				exitOnError(fmt.Errorf("invalid document id %q", args[0]))
			}

			client := newClient()
			if err := client.DeleteDocument(context.Background(), id); err != nil {
				exitOnError(err)
			}

			r := render.New(pretty)
			fmt.Println(r.Status(true, fmt.Sprintf("Deleted document %d", id)))
		},
	}

	// docchat docs summarize <id>
	summarizeCmd := &cobra.Command{
		Use:   "summarize <id>",
		Short: "Summarize a document and record it in the session",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				exitOnError(fmt.Errorf("invalid document id %q", args[0]))
			}

			coord, store, err := newCoordinator()
			if err != nil {
				exitOnError(err)
			}
			defer store.Close()

			ctx := context.Background()
			coord.Restore(ctx)

			ticket, err := coord.BeginSummarize(id)
			if err != nil {
				exitOnError(err)
			}
			turn := coord.ResolveSummarize(ctx, ticket)

			fmt.Println(turn.Text)
		},
	}

	cmd.AddCommand(listCmd, uploadCmd, deleteCmd, summarizeCmd)
	return cmd
}

func newClient() *api.Client {
	env := config.Get()
	return api.New(env.ServerURL, time.Duration(env.TimeoutSecs)*time.Second)
}
