package diagram

import "strings"

// Grid is a rectangular block of characters indexed [y][x].
type Grid [][]rune

// NewGrid splits text into rows, pads every row with spaces to the width of
// the longest one and appends two blank rows so scans can look past the last
// line without bounds checks.
func NewGrid(text string) Grid {
	text = strings.ReplaceAll(text, "\r", "")
	lines := strings.Split(text, "\n")
	width := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > width {
			width = n
		}
	}
	g := make(Grid, 0, len(lines)+2)
	for _, l := range lines {
		g = append(g, padRow([]rune(l), width))
	}
	g = append(g, padRow(nil, width), padRow(nil, width))
	return g
}

// BlankGrid returns a grid of spaces.
func BlankGrid(width, height int) Grid {
	g := make(Grid, height)
	for y := range g {
		g[y] = padRow(nil, width)
	}
	return g
}

func padRow(row []rune, width int) []rune {
	out := make([]rune, width)
	n := copy(out, row)
	for i := n; i < width; i++ {
		out[i] = ' '
	}
	return out
}

// Width returns the number of columns.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Height returns the number of rows.
func (g Grid) Height() int { return len(g) }

// In reports whether (x, y) lies inside the grid.
func (g Grid) In(x, y int) bool {
	return y >= 0 && y < len(g) && x >= 0 && x < len(g[y])
}

// At returns the character at (x, y), or a space outside the grid.
func (g Grid) At(x, y int) rune {
	if !g.In(x, y) {
		return ' '
	}
	return g[y][x]
}

// Set writes r at (x, y). Writes outside the grid are ignored.
func (g Grid) Set(x, y int, r rune) {
	if g.In(x, y) {
		g[y][x] = r
	}
}

// Line returns the line weight on side d of the cell at (x, y). Cells outside
// the grid carry no lines.
func (g Grid) Line(x, y int, d Direction) LineType {
	return LineAt(g.At(x, y), d)
}

// connects reports whether the cell at (x, y) and its neighbour in direction d
// share a line of the same weight across their common side.
func (g Grid) connects(x, y int, d Direction) bool {
	t := g.Line(x, y, d)
	if t == None {
		return false
	}
	dx, dy := d.Delta()
	return g.Line(x+dx, y+dy, d.Opposite()) == t
}

// Lines returns every row with trailing spaces removed. Trailing empty rows
// are dropped.
func (g Grid) Lines() []string {
	out := make([]string, len(g))
	for y, row := range g {
		out[y] = strings.TrimRight(string(row), " ")
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func (g Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}
