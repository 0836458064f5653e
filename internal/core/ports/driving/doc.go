// Package driving defines the interfaces that outer surfaces call INTO core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI depends on these interfaces; services implement them.
package driving
