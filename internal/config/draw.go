package config

import (
	"math/rand"
	"sort"
)

// Drawer produces weighted random draws from the configured option sets.
// It wraps a seeded source so runs are reproducible given the same seed.
// Not safe for concurrent use.
type Drawer struct {
	cfg *Config
	rng *rand.Rand
}

// NewDrawer creates a Drawer over cfg seeded with seed.
func NewDrawer(cfg *Config, seed int64) *Drawer {
	return &Drawer{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// RandomPersona draws a persona weighted by its configured weight.
// Personas with zero or missing weight default to 1.0.
func (d *Drawer) RandomPersona() Persona {
	weights := make([]float64, len(d.cfg.Personas))
	for i, p := range d.cfg.Personas {
		w := p.Weight
		if w <= 0 {
			w = 1.0
		}
		weights[i] = w
	}
	return d.cfg.Personas[d.weightedIndex(weights)]
}

// RandomToolCategory draws a tool category uniformly.
func (d *Drawer) RandomToolCategory() ToolCategory {
	return d.cfg.ToolCategories[d.rng.Intn(len(d.cfg.ToolCategories))]
}

// RandomRating draws a star rating from the configured distribution.
// Iteration order over the distribution map is fixed by sorting ratings,
// keeping draws deterministic for a given seed.
func (d *Drawer) RandomRating() int {
	ratings := make([]int, 0, len(d.cfg.RatingDistribution))
	for r := range d.cfg.RatingDistribution {
		ratings = append(ratings, r)
	}
	sort.Ints(ratings)

	weights := make([]float64, len(ratings))
	for i, r := range ratings {
		weights[i] = d.cfg.RatingDistribution[r]
	}
	return ratings[d.weightedIndex(weights)]
}

// RandomTone draws a tone from the configured characteristics.
func (d *Drawer) RandomTone() string {
	tones := d.cfg.Characteristics.Tones
	if len(tones) == 0 {
		return "professional"
	}
	return tones[d.rng.Intn(len(tones))]
}

// RandomToolExample draws a concrete tool name from the category.
func (d *Drawer) RandomToolExample(cat ToolCategory) string {
	return cat.Examples[d.rng.Intn(len(cat.Examples))]
}

// RandomFeatures draws up to n distinct features from the category.
func (d *Drawer) RandomFeatures(cat ToolCategory, n int) []string {
	if n > len(cat.Features) {
		n = len(cat.Features)
	}
	perm := d.rng.Perm(len(cat.Features))
	features := make([]string, n)
	for i := 0; i < n; i++ {
		features[i] = cat.Features[perm[i]]
	}
	return features
}

// weightedIndex picks an index proportionally to weights.
// Weights are assumed non-negative with a positive sum (validated at load).
func (d *Drawer) weightedIndex(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}

	target := d.rng.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if target < cum {
			return i
		}
	}
	return len(weights) - 1
}
