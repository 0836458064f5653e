package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/modpatch/internal/core/domain"
)

// errPatchFailed makes the process exit non-zero when any rule failed.
var errPatchFailed = errors.New("one or more rules failed")

var (
	applyJobs   int
	applyFormat string
	applyModule string
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Patch every module below the project root",
	Long: `Discovers modules below the project root and runs the enabled rules
against each one, in order. The report lists one outcome per rule and module.

Exits non-zero if any rule failed.`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().IntVarP(&applyJobs, "jobs", "j", 0, "modules patched concurrently (default from settings)")
	applyCmd.Flags().StringVarP(&applyFormat, "format", "o", formatText, "report format: text or yaml")
	applyCmd.Flags().StringVarP(&applyModule, "module", "m", "", "patch a single module by name")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(applyFormat); err != nil {
		return err
	}
	p, err := newPipeline(applyJobs)
	if err != nil {
		return err
	}

	var report *domain.Report
	if applyModule != "" {
		report, err = p.applier.ApplyModule(cmd.Context(), applyModule)
	} else {
		report, err = p.applier.Apply(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}

	if err := writeReport(cmd.OutOrStdout(), report, applyFormat); err != nil {
		return err
	}
	if report.HasFailures() {
		return errPatchFailed
	}
	return nil
}
