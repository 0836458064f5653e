package cli

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/modpatch/internal/core/domain"
)

// Report output formats.
const (
	formatText = "text"
	formatYAML = "yaml"
)

func checkFormat(format string) error {
	switch format {
	case formatText, formatYAML:
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q (want text or yaml)", domain.ErrInvalidInput, format)
	}
}

// writeReport renders a report in the requested format.
func writeReport(w io.Writer, report *domain.Report, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == formatYAML {
		return writeReportYAML(w, report)
	}
	writeReportText(w, report, NewStyles(nil))
	return nil
}

func writeReportYAML(w io.Writer, report *domain.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

func writeReportText(w io.Writer, report *domain.Report, styles *Styles) {
	if len(report.Modules) == 0 {
		fmt.Fprintln(w, "No modules found.")
		return
	}

	for _, m := range report.Modules {
		meta := m.Kind.String()
		if m.Namespace != "" {
			meta += ", " + m.Namespace
		}
		fmt.Fprintf(w, "%s %s\n", styles.Title.Render(m.Name), styles.Muted.Render("("+meta+")"))
		for _, o := range report.ForModule(m.Name) {
			status := styles.Status(o.Status).Render(fmt.Sprintf("%-7s", o.Status))
			if o.Detail != "" {
				fmt.Fprintf(w, "  %s %-14s %s\n", status, o.Rule, o.Detail)
			} else {
				fmt.Fprintf(w, "  %s %s\n", status, o.Rule)
			}
		}
	}

	c := report.Counts()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d modules: %d applied, %d skipped, %d failed (%s)\n",
		len(report.Modules), c.Applied, c.Skipped, c.Failed, report.Duration().Round(time.Millisecond))
}
