package capability

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/leofalp/aibridge/providers/ai"
)

// ModelList is the model catalog of one modality: either a static ordered list
// of model ids, or the Dynamic marker meaning ids are only known by asking the
// vendor at call time. Dynamic and a non-empty IDs never coexist.
type ModelList struct {
	Dynamic bool
	IDs     []string
}

// Static returns a ModelList holding ids.
func Static(ids ...string) ModelList {
	return ModelList{IDs: ids}
}

// Dynamic returns the "resolved at call time" marker.
func Dynamic() ModelList {
	return ModelList{Dynamic: true}
}

// Contains reports whether id is listed. It is always false for dynamic lists.
func (l ModelList) Contains(id string) bool {
	return slices.Contains(l.IDs, id)
}

// Descriptor describes one provider: which modalities it supports (the key set
// of Models), the model catalog and default model of each, and the adapter
// constructor.
type Descriptor struct {
	ID          string
	Models      map[ai.Modality]ModelList
	Defaults    map[ai.Modality]string
	Constructor ai.Constructor
}

// Supports reports whether the descriptor declares m.
func (d Descriptor) Supports(m ai.Modality) bool {
	_, ok := d.Models[m]
	return ok
}

// Modalities returns the supported modalities in [ai.Modalities] order.
func (d Descriptor) Modalities() []ai.Modality {
	var out []ai.Modality
	for _, m := range ai.Modalities {
		if d.Supports(m) {
			out = append(out, m)
		}
	}
	return out
}

// HasDynamicModels reports whether any modality resolves models at call time.
func (d Descriptor) HasDynamicModels() bool {
	for _, list := range d.Models {
		if list.Dynamic {
			return true
		}
	}
	return false
}

func (d Descriptor) validate() error {
	if d.ID == "" {
		return fmt.Errorf("descriptor has an empty provider id")
	}
	for m, list := range d.Models {
		if list.Dynamic && len(list.IDs) > 0 {
			return fmt.Errorf("provider %q: modality %s is dynamic but lists static models", d.ID, m)
		}
	}
	for m, model := range d.Defaults {
		list, ok := d.Models[m]
		if !ok {
			return fmt.Errorf("provider %q: default model for unsupported modality %s", d.ID, m)
		}
		if model != "" && !list.Dynamic && !list.Contains(model) {
			return fmt.Errorf("provider %q: default %s model %q is not in its model list", d.ID, m, model)
		}
	}
	return nil
}

// EnabledLookup is the external "is this provider administratively enabled"
// store, keyed by provider id.
type EnabledLookup interface {
	IsEnabled(ctx context.Context, providerID string) (bool, error)
}

// StaticEnabled is an in-memory EnabledLookup. Ids absent from the map are disabled.
type StaticEnabled map[string]bool

func (s StaticEnabled) IsEnabled(_ context.Context, providerID string) (bool, error) {
	return s[providerID], nil
}

// Catalog is the immutable table of provider descriptors. Build it once at
// startup with [NewCatalog] and share it; all lookups are read-only.
type Catalog struct {
	descriptors map[string]Descriptor
}

// NewCatalog validates and indexes the descriptors. A later descriptor with
// the same id replaces an earlier one.
func NewCatalog(descriptors ...Descriptor) (*Catalog, error) {
	c := &Catalog{descriptors: make(map[string]Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if err := d.validate(); err != nil {
			return nil, err
		}
		c.descriptors[d.ID] = d
	}
	return c, nil
}

// CapabilitiesOf returns the descriptor for id. Unknown ids yield a descriptor
// carrying only the id and no capabilities.
func (c *Catalog) CapabilitiesOf(providerID string) Descriptor {
	if d, ok := c.descriptors[providerID]; ok {
		return d
	}
	return Descriptor{ID: providerID}
}

// ModelsFor returns the model catalog of a provider modality. Unsupported
// modalities return an empty static list.
func (c *Catalog) ModelsFor(providerID string, m ai.Modality) ModelList {
	return c.CapabilitiesOf(providerID).Models[m]
}

// DefaultModelFor returns the default model of a provider modality, if any.
func (c *Catalog) DefaultModelFor(providerID string, m ai.Modality) (string, bool) {
	model, ok := c.CapabilitiesOf(providerID).Defaults[m]
	if !ok || model == "" {
		return "", false
	}
	return model, true
}

// Supports reports whether the provider declares modality m.
func (c *Catalog) Supports(providerID string, m ai.Modality) bool {
	return c.CapabilitiesOf(providerID).Supports(m)
}

// IDs returns every provider id, sorted.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.descriptors))
	for id := range c.descriptors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Descriptors returns every descriptor, sorted by id.
func (c *Catalog) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(c.descriptors))
	for _, id := range c.IDs() {
		out = append(out, c.descriptors[id])
	}
	return out
}

// ProvidersSupporting returns the descriptors, sorted by id, of providers that
// support m and that enabled reports as administratively enabled. A nil
// lookup treats every provider as enabled.
func (c *Catalog) ProvidersSupporting(ctx context.Context, m ai.Modality, enabled EnabledLookup) ([]Descriptor, error) {
	var out []Descriptor
	for _, d := range c.Descriptors() {
		if !d.Supports(m) {
			continue
		}
		if enabled != nil {
			ok, err := enabled.IsEnabled(ctx, d.ID)
			if err != nil {
				return nil, fmt.Errorf("checking whether provider %q is enabled: %w", d.ID, err)
			}
			if !ok {
				continue
			}
		}
		out = append(out, d)
	}
	return out, nil
}
