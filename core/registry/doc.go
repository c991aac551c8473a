// Package registry provides the provider [Factory]: an explicitly constructed
// table from provider id to [ai.Constructor]. There is no package-level
// default instance; build one at startup and pass it to whoever creates
// adapters.
package registry
