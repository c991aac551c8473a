package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leofalp/aibridge/core/registry"
	"github.com/leofalp/aibridge/providers/ai"
)

func TestCatalog_IDs(t *testing.T) {
	assert.Equal(t, []string{"anthropic", "elevenlabs", "gemini", "openai", "openrouter"}, Catalog().IDs())
}

func TestCatalog_DynamicImpliesHasDynamicModels(t *testing.T) {
	catalog := Catalog()
	for _, d := range catalog.Descriptors() {
		for _, m := range ai.Modalities {
			if catalog.ModelsFor(d.ID, m).Dynamic {
				assert.True(t, d.HasDynamicModels(), "%s/%s", d.ID, m)
			}
		}
	}
}

// TestCatalog_MatchesAdapters verifies every declared modality is backed by the
// adapter's operations and no operation goes undeclared.
func TestCatalog_MatchesAdapters(t *testing.T) {
	factory := NewFactory()

	for _, d := range Catalog().Descriptors() {
		t.Run(d.ID, func(t *testing.T) {
			p, err := factory.Create(d.ID, "test-key", ai.ResolvedConfig{})
			require.NoError(t, err)
			defer p.Close()

			assert.Equal(t, d.ID, p.ID())
			assert.True(t, ai.Supports(p, ai.OpValidateCredential))

			for _, op := range ai.Operations {
				m := op.Modality()
				if m == "" {
					continue
				}
				assert.Equal(t, d.Supports(m), ai.Supports(p, op), "%s", op)
			}
		})
	}
}

func TestNewFactory(t *testing.T) {
	factory := NewFactory()
	assert.Equal(t, Catalog().IDs(), factory.IDs())

	_, err := factory.Create("mistral", "key", ai.ResolvedConfig{})
	assert.ErrorIs(t, err, registry.ErrUnknownProvider)

	_, err = factory.Create("openai", "", ai.ResolvedConfig{})
	assert.ErrorIs(t, err, ai.ErrMissingCredential)
}
