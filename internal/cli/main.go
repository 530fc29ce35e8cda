package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ivlev/mte/internal/config"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := NewRootCmd()
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the mte command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mte",
		Short:         "Timeline editor engine for animated slide projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", config.DefaultPath, "Config file (YAML)")

	root.AddCommand(
		newNewCmd(),
		newInfoCmd(),
		newEvalCmd(),
		newPlayCmd(),
		newImportCmd(),
		newExportCmd(),
		newConvertCmd(),
		newDeckCmd(),
		newQRCmd(),
	)
	return root
}

// loadConfig reads --config, applies env overrides and validates.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
