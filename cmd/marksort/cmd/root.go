// Package cmd contains all CLI commands for marksort.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/marksort/internal/config"
	"github.com/f3rmion/marksort/internal/logging"
	"github.com/f3rmion/marksort/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// errReported is returned by commands that already told the user what went
// wrong.
var errReported = errors.New("error already reported")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "marksort [file]",
	Short: "$ Symbol Word Sorter - sort the $-words of a tab-separated file",
	Long: `marksort reads a text file of tab-separated words, keeps the words
starting with $, and shows them sorted and joined with tabs.

Running 'marksort' without arguments launches the interactive TUI, where a
file can be dropped onto the terminal or picked from a directory listing.
Passing a file loads it right away.

Use 'marksort sort <file>' to print the result without the TUI.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/marksort)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log at debug level")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig resolves the config directory and ENV variables.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		configDir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", configDir)
	}

	viper.SetEnvPrefix("MARKSORT")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// newLogger opens the log file for the loaded configuration. When the file
// cannot be opened logging is disabled rather than failing the command.
func newLogger(cfg *config.Config, configDir string) (*slog.Logger, io.Closer) {
	logger, closer, err := logging.New(logging.FromConfig(cfg, configDir, viper.GetBool("verbose")))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return logging.Discard(), io.NopCloser(nil)
	}
	return logger, closer
}

// runTUI launches the TUI application.
func runTUI(cmd *cobra.Command, args []string) error {
	configDir := getConfigDir()

	cfg, err := config.LoadDir(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using defaults\n", err)
		cfg = config.Default()
	}

	logger, closer := newLogger(cfg, configDir)
	defer closer.Close()

	var path string
	if len(args) > 0 {
		path = args[0]
	}
	logger.Info("starting TUI", "config_dir", configDir, "file", path)

	p := tea.NewProgram(
		tui.NewAppWithFile(cfg, configDir, logger, path),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
