package cmd

import (
	"errors"
	"fmt"

	"github.com/f3rmion/marksort/internal/clipboard"
	"github.com/f3rmion/marksort/internal/config"
	"github.com/f3rmion/marksort/internal/marker"
	"github.com/f3rmion/marksort/internal/source"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSortCmd() *cobra.Command {
	sortCmd := &cobra.Command{
		Use:   "sort <file>",
		Short: "Print the sorted $-words of a file",
		Long: `Read a file of tab-separated words and print the words starting with $,
sorted and joined with tabs. Nothing is printed when no word matches.

On failure one of the fixed messages is printed to stderr:
  Error reading file
  Error processing file. Please ensure it's a valid text file with tab-separated words.

Example:
  marksort sort words.txt
  marksort sort --collation locale --locale de words.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runSort,
	}

	sortCmd.Flags().Bool("copy", false, "also copy the result to the clipboard")
	sortCmd.Flags().String("collation", "", "sort order: codepoint or locale (default from config)")
	sortCmd.Flags().String("locale", "", "BCP-47 tag used with --collation locale (default from config)")

	return sortCmd
}

func init() {
	rootCmd.AddCommand(newSortCmd())
}

// collationFor resolves the sort order. Flags win over MARKSORT_COLLATION and
// MARKSORT_LOCALE, which win over the config file.
func collationFor(cmd *cobra.Command, cfg *config.Config) (marker.Collation, error) {
	name, tag := cfg.Collation, cfg.Locale

	if v := viper.GetString("collation"); v != "" {
		name = v
	}
	if v := viper.GetString("locale"); v != "" {
		tag = v
	}
	if cmd.Flags().Changed("collation") {
		name, _ = cmd.Flags().GetString("collation")
	}
	if cmd.Flags().Changed("locale") {
		tag, _ = cmd.Flags().GetString("locale")
	}

	return marker.ParseCollation(name, tag)
}

func runSort(cmd *cobra.Command, args []string) error {
	configDir := getConfigDir()

	cfg, err := config.LoadDir(configDir)
	if err != nil {
		return err
	}

	collation, err := collationFor(cmd, cfg)
	if err != nil {
		return err
	}

	logger, closer := newLogger(cfg, configDir)
	defer closer.Close()

	path := args[0]
	logger.Info("sort started", "path", path, "collation", collation.String())

	var res marker.Result
	doc, err := source.Load(cmd.Context(), path)
	switch {
	case errors.Is(err, source.ErrNoFile):
		err = marker.NewReadError(err)
	case err == nil:
		res, err = marker.Process(doc.Raw, marker.WithCollation(collation))
	}

	if err != nil {
		logger.Info("sort failed", "path", path, "kind", marker.KindOf(err))
		logger.Debug("sort failure cause", "error", err)
		fmt.Fprintln(cmd.ErrOrStderr(), marker.UserMessage(err))
		return errReported
	}

	logger.Info("sort finished", "path", path, "bytes", doc.Size, "tokens", res.Scanned, "kept", len(res.Tokens))

	if res.Empty() {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Text)

	if copyResult, _ := cmd.Flags().GetBool("copy"); copyResult {
		if err := clipboard.Write(res.Text); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not copy to clipboard: %v\n", err)
		}
	}

	return nil
}
