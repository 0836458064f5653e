// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - DescriptorStore: Enumerates build modules (memory, file tree)
//   - PatchRule: One idempotent fix (namespace, manifest, compile-target)
//   - RuleEngine: Runs the ordered rules against a module
//   - FileSystem: Manifest file access
//   - ConfigStore: Application configuration
//   - ModuleWatcher: Change notifications for watch mode
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or rule package
package driven
