package domain

import "time"

// PatchStatus is the terminal state of one rule invocation.
type PatchStatus string

// Available patch statuses.
const (
	// PatchApplied means the rule changed the module or one of its files.
	PatchApplied PatchStatus = "applied"

	// PatchSkipped means the rule had nothing to do or could not apply.
	PatchSkipped PatchStatus = "skipped"

	// PatchFailed means the rule hit an I/O or unexpected error.
	PatchFailed PatchStatus = "failed"
)

// String returns the string representation.
func (s PatchStatus) String() string {
	return string(s)
}

// RuleResult is what a rule returns when it completes without error.
type RuleResult struct {
	Applied bool
	Detail  string
}

// PatchOutcome records one rule invocation against one module.
// Outcomes are values and are never mutated after creation.
type PatchOutcome struct {
	Rule   string      `yaml:"rule"`
	Module string      `yaml:"module"`
	Status PatchStatus `yaml:"status"`
	Detail string      `yaml:"detail,omitempty"`
}

// ModuleSnapshot is the state of a descriptor after a pass.
type ModuleSnapshot struct {
	Name         string     `yaml:"name"`
	Kind         ModuleKind `yaml:"kind"`
	Namespace    string     `yaml:"namespace,omitempty"`
	JavaTarget   string     `yaml:"java_target,omitempty"`
	KotlinTarget string     `yaml:"kotlin_target,omitempty"`
}

// StatusCounts tallies outcomes by status.
type StatusCounts struct {
	Applied int `yaml:"applied"`
	Skipped int `yaml:"skipped"`
	Failed  int `yaml:"failed"`
}

// Report aggregates the outcomes of one applier pass.
type Report struct {
	RunID      string           `yaml:"run_id"`
	Root       string           `yaml:"root,omitempty"`
	StartedAt  time.Time        `yaml:"started_at"`
	FinishedAt time.Time        `yaml:"finished_at"`
	Outcomes   []PatchOutcome   `yaml:"outcomes"`
	Modules    []ModuleSnapshot `yaml:"modules"`
}

// Counts tallies the report outcomes by status.
func (r *Report) Counts() StatusCounts {
	var c StatusCounts
	for _, o := range r.Outcomes {
		switch o.Status {
		case PatchApplied:
			c.Applied++
		case PatchSkipped:
			c.Skipped++
		case PatchFailed:
			c.Failed++
		}
	}
	return c
}

// ForModule returns the outcomes recorded for one module, in rule order.
func (r *Report) ForModule(name string) []PatchOutcome {
	var out []PatchOutcome
	for _, o := range r.Outcomes {
		if o.Module == name {
			out = append(out, o)
		}
	}
	return out
}

// HasFailures returns true if any outcome failed.
func (r *Report) HasFailures() bool {
	return r.Counts().Failed > 0
}

// Duration returns how long the pass took.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
