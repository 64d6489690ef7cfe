package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawerDeterministicPerSeed(t *testing.T) {
	cfg := DefaultConfig()

	draw := func(seed int64) []int {
		d := NewDrawer(cfg, seed)
		ratings := make([]int, 20)
		for i := range ratings {
			ratings[i] = d.RandomRating()
		}
		return ratings
	}

	assert.Equal(t, draw(7), draw(7))
	assert.NotEqual(t, draw(7), draw(8))
}

func TestRandomRatingRespectsDistribution(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RatingDistribution = map[int]float64{2: 1.0}

	d := NewDrawer(cfg, 1)
	for i := 0; i < 50; i++ {
		assert.Equal(t, 2, d.RandomRating())
	}
}

func TestRandomRatingCoversSupport(t *testing.T) {
	d := NewDrawer(DefaultConfig(), 3)

	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		r := d.RandomRating()
		require.GreaterOrEqual(t, r, 1)
		require.LessOrEqual(t, r, 5)
		seen[r] = true
	}
	// With 500 draws every rating in the default distribution shows up
	assert.Len(t, seen, 5)
}

func TestRandomPersonaDefaultsZeroWeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Personas = []Persona{
		{Name: "Only", Weight: 0},
	}

	d := NewDrawer(cfg, 1)
	assert.Equal(t, "Only", d.RandomPersona().Name)
}

func TestRandomPersonaWeighted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Personas = []Persona{
		{Name: "Common", Weight: 100},
		{Name: "Rare", Weight: 0.0001},
	}

	d := NewDrawer(cfg, 2)
	common := 0
	for i := 0; i < 200; i++ {
		if d.RandomPersona().Name == "Common" {
			common++
		}
	}
	assert.Greater(t, common, 190)
}

func TestRandomFeaturesDistinct(t *testing.T) {
	cfg := DefaultConfig()
	cat := cfg.ToolCategories[0]

	d := NewDrawer(cfg, 4)
	features := d.RandomFeatures(cat, 3)
	require.Len(t, features, 3)

	seen := make(map[string]bool)
	for _, f := range features {
		assert.False(t, seen[f], "duplicate feature %q", f)
		seen[f] = true
	}
}

func TestRandomFeaturesCapped(t *testing.T) {
	cfg := DefaultConfig()
	cat := ToolCategory{Name: "Tiny", Examples: []string{"x"}, Features: []string{"a", "b"}}

	d := NewDrawer(cfg, 5)
	assert.Len(t, d.RandomFeatures(cat, 10), 2)
}

func TestRandomToolExampleFromCategory(t *testing.T) {
	cfg := DefaultConfig()
	cat := cfg.ToolCategories[1]

	d := NewDrawer(cfg, 6)
	tool := d.RandomToolExample(cat)
	assert.Contains(t, cat.Examples, tool)
}

func TestRandomToneFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Characteristics.Tones = nil

	d := NewDrawer(cfg, 7)
	assert.Equal(t, "professional", d.RandomTone())
}
