package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List available patch rules",
	Long: `Lists every registered patch rule. Enabled rules are shown in the
order they run; disabled rules follow.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	registry := newRegistry()
	for i, name := range settings.Rules {
		if !registry.Has(name) {
			cmd.Printf("  %d. %s (unknown)\n", i+1, name)
			continue
		}
		cmd.Printf("  %d. %s\n", i+1, name)
	}
	for _, name := range registry.Names() {
		if !slices.Contains(settings.Rules, name) {
			cmd.Printf("  -  %s (disabled)\n", name)
		}
	}
	return nil
}
