// Package domain defines the core entities for modpatch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Descriptor: A build module with its android settings
//   - AndroidModule: The settings capability rules read and write
//   - PatchOutcome: The result of one rule on one module
//   - Report: The aggregated outcomes of a pass
//   - PatchSettings: Configuration for a pass
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
