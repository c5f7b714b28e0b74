package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/boga881/drupalextension/src/config"
	"github.com/boga881/drupalextension/src/logging"
	"github.com/boga881/drupalextension/src/schema"
)

var (
	cfgFile string
	profile string
	verbose bool
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "drupalext",
	Short: "Drupal extension configuration assembler",
	Long: `drupalext validates the Drupal extension section of a behat configuration,
activates the drivers it configures and prints the wired component registry.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(os.Stderr, logging.ProfileRuntime)
		if verbose {
			logger = logger.Level(zerolog.DebugLevel)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: behat.yml in the working directory or git root)")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", config.DefaultProfile, "behat profile to read")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

// configPath returns --config, or the discovered file for the working directory.
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return config.Discover(wd)
}

// loadDocument reads the raw extension section for the selected profile.
func loadDocument() (*schema.Map, string, error) {
	path, err := configPath()
	if err != nil {
		return nil, "", err
	}
	doc, err := config.Load(path, profile)
	if err != nil {
		return nil, path, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug().Str("path", path).Str("profile", profile).Msg("configuration loaded")
	return doc, path, nil
}
