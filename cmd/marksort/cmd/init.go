package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/marksort/internal/config"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize marksort configuration",
		Long: `Write a config.yaml with the default settings to your config directory.

The file controls:
  - the file picker (start directory, extensions, hidden files)
  - the sort order (codepoint or locale collation)
  - the rotating log file`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	initCmd.Flags().Bool("force", false, "overwrite existing configuration")

	return initCmd
}

func init() {
	rootCmd.AddCommand(newInitCmd())
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.FileName)

	// Check if config already exists
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config file: %w", err)
	}

	if err := config.EnsureConfigDir(configDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initializing marksort configuration in %s\n\n", configDir)
	fmt.Fprintf(out, "  Created %s\n\n", config.FileName)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit config.yaml to set the picker directory or sort order")
	fmt.Fprintln(out, "  2. Run 'marksort sort <file>' or just 'marksort' to open the TUI")

	return nil
}
