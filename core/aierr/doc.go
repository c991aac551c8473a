// Package aierr normalizes provider failures into a closed set of canonical
// kinds.
//
// [MapError] is the pure classifier: given an HTTP status (or none), the
// vendor message and a transport failure kind, it applies a fixed, ordered
// rule list and returns one [Kind]. [MessageFromBody] digs the message out of
// whatever error body a vendor sent, and [FromResponse] / [FromTransport]
// combine both into an [*Error] that adapters return to their callers.
package aierr
