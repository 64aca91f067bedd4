// Package cli wires configuration, storage and the front ends into the todo command.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpggio/todolist/internal/config"
	"github.com/rpggio/todolist/internal/console"
)

type globalFlags struct {
	configPath string
	backend    string
	storePath  string
	logLevel   string
}

// NewRootCmd builds the todo command tree.
func NewRootCmd(version string) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "todo",
		Short: "A menu-driven to-do list",
		Long: `todo keeps a list of to-do items with a title, description, due date and status.

Run without arguments to open the interactive menu. Items live in memory unless
store.backend selects sqlite or disk.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd, flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML config file (default $TODO_CONFIG_PATH)")
	pf.StringVar(&flags.backend, "backend", "", "Storage backend: memory, sqlite or disk")
	pf.StringVar(&flags.storePath, "path", "", "Database file or directory for the storage backend")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(newServeCmd(flags, version))
	rootCmd.AddCommand(newVersionCmd(version))
	return rootCmd
}

// Execute runs the root command.
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadConfig applies command-line flags over file and environment settings.
func loadConfig(flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if flags.backend != "" {
		cfg.Store.Backend = flags.backend
	}
	if flags.storePath != "" {
		cfg.Store.Path = flags.storePath
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runMenu(cmd *cobra.Command, flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	menu := console.NewMenu(a.items, console.NewLineReader(cmd.InOrStdin(), out), out, a.logger)
	return menu.Run(cmd.Context())
}
