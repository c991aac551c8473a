// Package builtin wires the adapters shipped with aibridge into a capability
// catalog and a provider factory.
package builtin
