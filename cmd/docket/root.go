package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/docket/internal/config"
	"github.com/HendryAvila/docket/internal/logging"
	dserver "github.com/HendryAvila/docket/internal/server"
	"github.com/HendryAvila/docket/internal/workspace"
)

// app carries what the subcommands share after the root pre-run.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "docket",
		Short: "Markdown document and database MCP server",
		Long: `docket serves markdown documents and markdown-backed databases to MCP
clients. Register the directories it may touch as workspaces, then add it
to your AI tool's MCP config:

  {
    "mcpServers": {
      "docket": {
        "command": "docket",
        "args": ["serve"]
      }
    }
  }`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: ~/.config/docket/config.toml)")

	root.AddCommand(
		newServeCmd(a),
		newWorkspaceCmd(a),
		newHistoryCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) load() error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFrom(a.configPath)
		if err == nil {
			err = a.cfg.Validate()
		}
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(a.cfg.Level())
	a.logger = slog.Default()
	return nil
}

// openStore opens the registry for CLI subcommands. Callers must Close it.
func (a *app) openStore() (*workspace.Store, error) {
	store, err := workspace.New(workspace.Config{DataDir: a.cfg.DataDir})
	if err != nil {
		return nil, err
	}
	if err := store.Sync(a.cfg.Workspaces); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the docket version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "docket v%s\n", dserver.Version)
		},
	}
}
