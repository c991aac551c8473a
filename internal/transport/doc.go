// Package transport is the glue every vendor adapter shares between the raw
// HTTP helpers and the provider contract: error normalization into
// *aierr.Error, per-call instrumentation, structured-output extraction and
// the credential validation policy.
package transport
