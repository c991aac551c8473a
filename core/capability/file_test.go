package capability

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leofalp/aibridge/providers/ai"
)

func TestLoadFileEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enabled.yaml")
	require.NoError(t, os.WriteFile(path, []byte("providers:\n  alpha: true\n  voice: false\n"), 0o600))

	lookup, err := LoadFileEnabled(path)
	require.NoError(t, err)

	ctx := context.Background()
	for id, want := range map[string]bool{"alpha": true, "voice": false, "router": false} {
		got, err := lookup.IsEnabled(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got, id)
	}

	got, err := fixtureCatalog(t).ProvidersSupporting(ctx, ai.ModalityChat, lookup)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alpha", got[0].ID)
}

func TestParseFileEnabled(t *testing.T) {
	lookup, err := ParseFileEnabled([]byte(""))
	require.NoError(t, err)
	enabled, _ := lookup.IsEnabled(context.Background(), "alpha")
	assert.False(t, enabled)

	_, err = ParseFileEnabled([]byte("providers: [a, b"))
	assert.Error(t, err)

	_, err = LoadFileEnabled(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
