// Package capability holds the static description of every provider: the
// modalities it supports, the model catalog of each modality (or the
// [Dynamic] marker) and the default model per modality.
//
// A [Catalog] is built once at startup and never mutated; lookups are pure.
// [Catalog.ProvidersSupporting] is the one place capability data meets the
// external "administratively enabled" store, modelled as [EnabledLookup].
package capability
