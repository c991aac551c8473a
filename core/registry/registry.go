package registry

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/leofalp/aibridge/core/capability"
	"github.com/leofalp/aibridge/providers/ai"
)

var (
	// ErrUnknownProvider is returned by Create when no constructor is registered for the id.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrInvalidConfig is returned by Create when the resolved config fails validation.
	ErrInvalidConfig = errors.New("invalid resolved config")
)

var imageSizePattern = regexp.MustCompile(`^[1-9][0-9]*x[1-9][0-9]*$`)

// Factory maps provider ids to adapter constructors and builds configured
// adapters on demand.
//
// Registration is meant to happen once at startup, before concurrent traffic
// begins; Factory does no locking of its own, so Register must not race with
// Create. After startup the factory is read-only and safe to share.
type Factory struct {
	constructors map[string]ai.Constructor
	catalog      *capability.Catalog
	validate     *validator.Validate
}

// NewValidator returns a validator that understands the tags used by
// ai.ResolvedConfig, including the custom "imagesize" tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("imagesize", func(fl validator.FieldLevel) bool {
		return imageSizePattern.MatchString(fl.Field().String())
	})
	return v
}

// New returns an empty factory. The catalog, when non-nil, supplies default
// models for modalities the caller left unset in the resolved config.
func New(catalog *capability.Catalog) *Factory {
	return &Factory{
		constructors: make(map[string]ai.Constructor),
		catalog:      catalog,
		validate:     NewValidator(),
	}
}

// Register binds id to constructor. Registering an id again replaces the
// previous constructor: the last registration wins.
func (f *Factory) Register(id string, constructor ai.Constructor) {
	f.constructors[id] = constructor
}

// RegisterCatalog registers the constructor of every catalog descriptor that has one.
func (f *Factory) RegisterCatalog() {
	if f.catalog == nil {
		return
	}
	for _, d := range f.catalog.Descriptors() {
		if d.Constructor != nil {
			f.Register(d.ID, d.Constructor)
		}
	}
}

// Registered reports whether id has a constructor.
func (f *Factory) Registered(id string) bool {
	_, ok := f.constructors[id]
	return ok
}

// IDs returns the registered provider ids, sorted.
func (f *Factory) IDs() []string {
	ids := make([]string, 0, len(f.constructors))
	for id := range f.constructors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Create builds an adapter for id. It fails with ErrUnknownProvider when id
// has no constructor and with ErrInvalidConfig when config does not validate.
// Model fields left empty in config are filled from the catalog defaults.
// The caller owns the returned provider and must Close it.
func (f *Factory) Create(id, credential string, config ai.ResolvedConfig) (ai.Provider, error) {
	constructor, ok := f.constructors[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, id)
	}

	if err := f.validate.Struct(config); err != nil {
		return nil, fmt.Errorf("%w for provider %q: %v", ErrInvalidConfig, id, err)
	}

	provider, err := constructor(credential, f.withDefaults(id, config))
	if err != nil {
		return nil, fmt.Errorf("failed to build provider %s: %w", id, err)
	}
	return provider, nil
}

func (f *Factory) withDefaults(id string, config ai.ResolvedConfig) ai.ResolvedConfig {
	if f.catalog == nil {
		return config
	}
	for _, m := range ai.Modalities {
		if config.ModelFor(m) != "" {
			continue
		}
		if model, ok := f.catalog.DefaultModelFor(id, m); ok {
			config = config.WithModel(m, model)
		}
	}
	return config
}
