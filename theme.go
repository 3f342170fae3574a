package yoga

// Palette is the application's static color table: dark violet surfaces with
// gold accents. Values are CSS color strings (hex or rgba).
type Palette struct {
	DeepViolet   string
	DarkViolet   string
	RichViolet   string
	LuxuryViolet string
	DeepGold     string
	RichGold     string
	BrightGold   string
	LightGold    string
	GlowGold     string
	GlowViolet   string
	White        string
	LightGray    string
	Gray         string
}

// DefaultPalette returns the violet and gold palette.
func DefaultPalette() Palette {
	return Palette{
		DeepViolet:   "#1a0033",
		DarkViolet:   "#2d1b4e",
		RichViolet:   "#4a2c6d",
		LuxuryViolet: "#6b3fa0",
		DeepGold:     "#b8860b",
		RichGold:     "#d4af37",
		BrightGold:   "#ffd700",
		LightGold:    "#ffe55c",
		GlowGold:     "rgba(255, 215, 0, 0.3)",
		GlowViolet:   "rgba(107, 63, 160, 0.3)",
		White:        "#ffffff",
		LightGray:    "#e0e0e0",
		Gray:         "#999999",
	}
}

// NamedColor is one entry of a Palette.
type NamedColor struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Colors lists the palette entries in declaration order, keyed by the names
// the mobile client uses.
func (p Palette) Colors() []NamedColor {
	return []NamedColor{
		{"deepViolet", p.DeepViolet},
		{"darkViolet", p.DarkViolet},
		{"richViolet", p.RichViolet},
		{"luxuryViolet", p.LuxuryViolet},
		{"deepGold", p.DeepGold},
		{"richGold", p.RichGold},
		{"brightGold", p.BrightGold},
		{"lightGold", p.LightGold},
		{"glowGold", p.GlowGold},
		{"glowViolet", p.GlowViolet},
		{"white", p.White},
		{"lightGray", p.LightGray},
		{"gray", p.Gray},
	}
}
