// Package memory provides in-memory implementations of driven port interfaces.
//
// Adapters:
//   - DescriptorStore: Module descriptors held in a map
//   - ConfigStore: Configuration values for tests and embedding
package memory
