package detect

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"item-scanner/internal/entity"
)

func TestLoadTemplatesSkipsMissingIcons(t *testing.T) {
	dir := t.TempDir()

	f, err := os.Create(filepath.Join(dir, "iron-sword.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, syntheticIcon(58, 1)))
	require.NoError(t, f.Close())

	// A corrupt asset is skipped the same way a missing one is.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ash-totem.png"), []byte("not a png"), 0644))

	cat := entity.NewCatalog([]entity.GameEntity{
		{ID: "iron-sword", Name: "Iron Sword"},
		{ID: "ash-totem", Name: "Ash Totem"},
		{ID: "moon-blade", Name: "Moon Blade"},
	})

	store, err := LoadTemplates(dir, cat)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	require.Equal(t, "Iron Sword", store.NameOf("iron-sword"))
	require.Equal(t, "ash-totem", store.NameOf("ash-totem"))
}

func TestLoadTemplatesEmptyLibraryIsError(t *testing.T) {
	cat := entity.NewCatalog([]entity.GameEntity{{ID: "iron-sword", Name: "Iron Sword"}})
	_, err := LoadTemplates(t.TempDir(), cat)
	require.Error(t, err)
}

func TestNewTemplateSamplesAllScales(t *testing.T) {
	tmpl := NewTemplate(entity.GameEntity{ID: "iron-sword", Name: "Iron Sword"}, syntheticIcon(58, 1))

	for i, s := range tmpl.Samples {
		require.NotNil(t, s, i)
		require.Equal(t, 40, s.Width, i)
		require.Equal(t, 40, s.Height, i)
	}
	require.Same(t, tmpl.Samples[1], tmpl.Canonical())
}
