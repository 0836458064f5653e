package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/modpatch/internal/adapters/driven/storage/tree"
	"github.com/custodia-labs/modpatch/internal/adapters/driven/watcher"
	"github.com/custodia-labs/modpatch/internal/core/domain"
	"github.com/custodia-labs/modpatch/internal/logger"
)

var (
	watchJobs     int
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Patch modules again whenever their files change",
	Long: `Runs a full pass, then watches every module descriptor and manifest
and re-patches a module when one of its files is written.

Modules added after the watch started are picked up on the next restart.
Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVarP(&watchJobs, "jobs", "j", 0, "modules patched concurrently in the initial pass")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period before re-patching")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := newPipeline(watchJobs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report, err := p.applier.Apply(ctx)
	if err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}
	writeReportText(out, report, NewStyles(nil))

	descriptors, err := p.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load modules: %w", err)
	}

	w := watcher.New(watchTargets(descriptors), watcher.WithDebounce(watchDebounce))
	defer w.Close()

	changes, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	fmt.Fprintf(out, "\nWatching %d modules. Press Ctrl-C to stop.\n", len(descriptors))

	for change := range changes {
		logger.Info("%s changed (%s)", change.Path, change.Kind)
		report, err := p.applier.ApplyModule(ctx, change.Module)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "patch %s: %v\n", change.Module, err)
			continue
		}
		fmt.Fprintln(out)
		writeReportText(out, report, NewStyles(nil))
	}
	return nil
}

// watchTargets lists the descriptor and manifest files of every module.
func watchTargets(descriptors []*domain.Descriptor) []watcher.Target {
	var targets []watcher.Target
	for _, d := range descriptors {
		for _, path := range tree.DescriptorPaths(d.Dir) {
			targets = append(targets, watcher.Target{Module: d.Name, Path: path, Kind: domain.ChangeDescriptor})
		}
		if d.ManifestPath != "" {
			targets = append(targets, watcher.Target{Module: d.Name, Path: d.ManifestPath, Kind: domain.ChangeManifest})
		}
	}
	return targets
}
