package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage patch settings",
	Long: `View and change the settings every pass runs with: the namespace
prefix, the compile target, the manifest location, enabled rules and the
default concurrency.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting.

Available keys:
  namespace.prefix  - prefix for assigned namespaces (e.g. com.fix.)
  compile.target    - Java and Kotlin compile target (e.g. 17)
  manifest.path     - manifest location relative to a module
  rules.enabled     - comma-separated rules in run order
  apply.jobs        - modules patched concurrently`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Printf("  Namespace prefix: %q\n", settings.NamespacePrefix)
	cmd.Printf("  Compile target:   %s\n", settings.CompileTarget)
	cmd.Printf("  Manifest path:    %s\n", settings.ManifestPath)
	cmd.Printf("  Rules:            %s\n", strings.Join(settings.Rules, ", "))
	cmd.Printf("  Jobs:             %d\n", settings.Jobs)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("%s set to %s\n", key, value)
	return nil
}
