package timeline

// palette is the ordered set of colors handed to series without a color.
var palette = [...]string{
	"rgb(31, 119, 180)",
	"rgb(255, 127, 14)",
	"rgb(44, 160, 44)",
	"rgb(214, 39, 40)",
	"rgb(148, 103, 189)",
	"rgb(140, 86, 75)",
	"rgb(227, 119, 194)",
	"rgb(127, 127, 127)",
	"rgb(188, 189, 34)",
	"rgb(23, 190, 207)",
}

// PaletteSize is the number of distinct default colors.
const PaletteSize = len(palette)

// PaletteColor returns the default color for the series at index i of the
// data map.
func PaletteColor(i int) string {
	i %= PaletteSize
	if i < 0 {
		i += PaletteSize
	}
	return palette[i]
}
