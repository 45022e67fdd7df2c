package diagram

// Glyphs carrying a single or double line on a given side. Each table is the
// previous one rotated by 90 degrees.
var sideGlyphs = [4][2]string{
	Up:    {"│└┘├┤┴╛╘╡╧┼╞╪", "║╚╝╠╣╩╜╙╢╨╬╟╫"},
	Right: {"─└┌├┬┴╓╙╨╟╥╫┼", "═╚╔╠╦╩╒╘╧╞╤╪╬"},
	Down:  {"│┌┐├┤┬╒╕╡╞╤╪┼", "║╔╗╠╣╦╓╖╢╟╥╫╬"},
	Left:  {"─┐┘┤┬┴╜╖╢╨╥╫┼", "═╗╝╣╦╩╛╕╡╧╤╪╬"},
}

// Palette is every glyph the classifier knows about.
const Palette = "─│┌┐└┘├┤┬┴┼═║╒╓╔╕╖╗╘╙╚╛╜╝╞╟╠╡╢╣╤╥╦╧╨╩╪╫╬"

var glyphSides = map[rune][4]LineType{}

func init() {
	for d, sets := range sideGlyphs {
		for i, set := range sets {
			for _, r := range set {
				sides := glyphSides[r]
				sides[d] = LineType(i + 1)
				glyphSides[r] = sides
			}
		}
	}
}

// LineAt returns the line weight glyph r carries on side d.
func LineAt(r rune, d Direction) LineType {
	return glyphSides[r][d]
}

// Sides returns the line weight of r on all four sides, indexed by Direction.
func Sides(r rune) [4]LineType {
	return glyphSides[r]
}

// IsLineGlyph reports whether r is a box-drawing glyph from the palette.
func IsLineGlyph(r rune) bool {
	_, ok := glyphSides[r]
	return ok
}
