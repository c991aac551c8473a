// Package parse recovers structured data from raw model output.
//
// [ExtractObject] is the tolerant entry point for text that should contain one
// JSON object but may also carry reasoning segments (<think>...</think>),
// markdown code fences, or narrative prose around it. It is total: every
// input yields either an [Object] or false, never a panic.
//
// [Object] keeps keys in document order. [DecodeObject] converts a recovered
// object into a Go type.
package parse
