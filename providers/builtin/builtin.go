package builtin

import (
	"github.com/leofalp/aibridge/core/capability"
	"github.com/leofalp/aibridge/core/registry"
	"github.com/leofalp/aibridge/providers/ai/anthropic"
	"github.com/leofalp/aibridge/providers/ai/elevenlabs"
	"github.com/leofalp/aibridge/providers/ai/gemini"
	"github.com/leofalp/aibridge/providers/ai/openai"
	"github.com/leofalp/aibridge/providers/ai/openrouter"
)

// Descriptors returns the descriptor of every built-in provider.
func Descriptors() []capability.Descriptor {
	return []capability.Descriptor{
		openai.Descriptor(),
		anthropic.Descriptor(),
		gemini.Descriptor(),
		openrouter.Descriptor(),
		elevenlabs.Descriptor(),
	}
}

// Catalog returns the capability catalog of the built-in providers.
func Catalog() *capability.Catalog {
	catalog, err := capability.NewCatalog(Descriptors()...)
	if err != nil {
		// The built-in descriptors are fixed at compile time.
		panic("builtin: invalid descriptor: " + err.Error())
	}
	return catalog
}

// NewFactory returns a factory with every built-in provider registered and
// backed by the built-in catalog.
func NewFactory() *registry.Factory {
	factory := registry.New(Catalog())
	factory.RegisterCatalog()
	return factory
}
