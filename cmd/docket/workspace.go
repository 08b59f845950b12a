package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/docket/internal/workspace"
)

func newWorkspaceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Manage the directories docket may edit",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name> <dir>",
			Short: "Register a workspace (or point an existing name at a new dir)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := a.openStore()
				if err != nil {
					return err
				}
				defer store.Close()

				ws, err := store.Register(args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s → %s\n", ws.Name, ws.Root)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List registered workspaces",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := a.openStore()
				if err != nil {
					return err
				}
				defer store.Close()

				list, err := store.List()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(list) == 0 {
					fmt.Fprintln(out, "No workspaces registered.")
					fmt.Fprintln(out, "Add one with: docket workspace add <name> <dir>")
					return nil
				}
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				for _, ws := range list {
					fmt.Fprintf(tw, "%s\t%s\n", ws.Name, ws.Root)
				}
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:     "remove <name>",
			Aliases: []string{"rm"},
			Short:   "Unregister a workspace and drop its edit history (files are kept)",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := a.openStore()
				if err != nil {
					return err
				}
				defer store.Close()

				if err := store.Remove(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	var opts workspace.HistoryOptions
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show edits made through the server, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			edits, err := store.History(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(edits) == 0 {
				fmt.Fprintln(out, "No edits recorded.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, e := range edits {
				status := "ok"
				if !e.Success {
					status = "rejected"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", e.CreatedAt, e.Workspace, e.Tool, e.Target, status, e.Summary)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&opts.Workspace, "workspace", "w", "", "only edits in this workspace")
	cmd.Flags().StringVar(&opts.Target, "path", "", "only edits to this path")
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "full-text search over edit summaries")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "max results")
	return cmd
}
