package domain

import "errors"

// Domain errors represent patching failures.
// Rules wrap these with fmt.Errorf("%w") so the engine can classify them.
var (
	// ErrNotFound indicates a requested module does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownRule indicates a rule name that is not registered.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrDiscovery indicates the module tree could not be enumerated.
	// It is fatal for the whole run.
	ErrDiscovery = errors.New("module discovery failed")

	// ErrIO indicates a read or write failure on a module artifact.
	// It is scoped to one rule invocation and reported as a failed outcome.
	ErrIO = errors.New("i/o failure")

	// ErrCapabilityAbsent indicates the module does not expose the setting a
	// rule needs (e.g. no Kotlin options). Reported as a skipped outcome.
	ErrCapabilityAbsent = errors.New("capability absent")
)
