package domain

var palette = []string{
	"#6366F1",
	"#22C55E",
	"#F97316",
	"#EC4899",
	"#0EA5E9",
	"#EAB308",
	"#A855F7",
	"#14B8A6",
}

// PaletteColor picks a deterministic color from the creation index.
func PaletteColor(index int) string {
	n := len(palette)
	return palette[((index%n)+n)%n]
}
