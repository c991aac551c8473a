// Package jsonschema derives JSON Schema documents from Go types by
// reflection, so structured generation requests can describe the object they
// expect from the Go type that will receive it.
//
// The entry point is [For]. Recursive types are emitted once under $defs and
// referenced with $ref.
package jsonschema
