package yoga_test

import (
	"testing"

	"github.com/fwojciec/yoga"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDefaultPalette(t *testing.T) {
	t.Parallel()

	p := yoga.DefaultPalette()

	assert.Equal(t, "#1a0033", p.DeepViolet)
	assert.Equal(t, "#6b3fa0", p.LuxuryViolet)
	assert.Equal(t, "#d4af37", p.RichGold)
	assert.Equal(t, "#ffd700", p.BrightGold)
	assert.Equal(t, "rgba(255, 215, 0, 0.3)", p.GlowGold)
	assert.Equal(t, "rgba(107, 63, 160, 0.3)", p.GlowViolet)
	assert.Equal(t, "#999999", p.Gray)
}

func TestDefaultPalette_RepeatedReadsAreEqual(t *testing.T) {
	t.Parallel()

	first := yoga.DefaultPalette()
	for range 3 {
		if diff := cmp.Diff(first, yoga.DefaultPalette()); diff != "" {
			t.Fatalf("palette changed between reads (-first +next):\n%s", diff)
		}
	}
	if diff := cmp.Diff(first.Colors(), yoga.DefaultPalette().Colors()); diff != "" {
		t.Fatalf("colors changed between reads (-first +next):\n%s", diff)
	}
}

func TestPalette_Colors(t *testing.T) {
	t.Parallel()

	colors := yoga.DefaultPalette().Colors()

	assert.Len(t, colors, 13)
	assert.Equal(t, yoga.NamedColor{Name: "deepViolet", Value: "#1a0033"}, colors[0])
	assert.Equal(t, yoga.NamedColor{Name: "gray", Value: "#999999"}, colors[len(colors)-1])

	seen := make(map[string]bool)
	for _, c := range colors {
		assert.False(t, seen[c.Name], "duplicate color name %q", c.Name)
		seen[c.Name] = true
		assert.NotEmpty(t, c.Value)
	}
}
