// Package cli provides the modpatch command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/modpatch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/modpatch/internal/core/ports/driving"
	"github.com/custodia-labs/modpatch/internal/core/services"
	"github.com/custodia-labs/modpatch/internal/logger"
)

var version = "dev"

var (
	verbose     bool
	configDir   string
	projectRoot string
)

// settingsService is resolved from the config directory unless set beforehand.
var settingsService driving.SettingsService

var rootCmd = &cobra.Command{
	Use:   "modpatch",
	Short: "Apply compatibility fixes to build modules",
	Long: `modpatch discovers build modules below a project root and applies an
ordered set of idempotent patch rules to each of them: namespace assignment,
manifest package removal and compile target normalisation.

Every rule reports applied, skipped or failed per module; a failure in one
module never stops the others.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each rule decision to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.modpatch)")
	rootCmd.PersistentFlags().StringVarP(&projectRoot, "root", "C", ".", "project root to scan for modules")
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if settingsService != nil {
		return nil
	}
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return err
	}
	settingsService = services.NewSettingsService(store)
	return nil
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	defer logger.Sync()
	return rootCmd.Execute()
}
