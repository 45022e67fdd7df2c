package diagram

// cellCode packs the four side weights of a cell into a base-3 number, Up
// being the least significant digit.
func cellCode(sides [4]LineType) int {
	code := 0
	for d := Left; d >= Up; d-- {
		code = code*3 + int(sides[d])
	}
	return code
}

func decodeCell(code int) [4]LineType {
	var sides [4]LineType
	for _, d := range Directions {
		sides[d] = LineType(code % 3)
		code /= 3
	}
	return sides
}

// glyphs maps every cell code to the glyph drawn for it.
var glyphs [81]rune

func init() {
	for _, r := range Palette {
		glyphs[cellCode(Sides(r))] = r
	}
	for code := range glyphs {
		if code == 0 {
			glyphs[code] = ' '
			continue
		}
		if glyphs[code] == 0 {
			glyphs[code] = nearestGlyph(decodeCell(code))
		}
	}
}

// nearestGlyph picks a glyph for side combinations the palette cannot draw
// exactly. A lone half line is drawn as a full straight line.
func nearestGlyph(sides [4]LineType) rune {
	only, count := Up, 0
	for _, d := range Directions {
		if sides[d] != None {
			only = d
			count++
		}
	}
	if count == 1 {
		switch {
		case only.Horizontal() && sides[only] == Double:
			return '═'
		case only.Horizontal():
			return '─'
		case sides[only] == Double:
			return '║'
		default:
			return '│'
		}
	}

	best, bestCost := '┼', -1
	for _, r := range Palette {
		cost := 0
		for d, t := range Sides(r) {
			switch {
			case (t == None) != (sides[d] == None):
				cost += 4
			case t != sides[d]:
				cost++
			}
		}
		if bestCost < 0 || cost < bestCost {
			best, bestCost = r, cost
		}
	}
	return best
}

// GlyphFor returns the glyph drawn for a cell with the given side weights.
func GlyphFor(sides [4]LineType) rune {
	return glyphs[cellCode(sides)]
}

type canvas struct {
	w, h  int
	cells [][4]LineType
}

func (c *canvas) add(x, y int, d Direction, t LineType) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h || t == None {
		return
	}
	cell := &c.cells[y*c.w+x]
	merged := LineType(int(cell[d]) | int(t))
	if merged > Double {
		merged = Double
	}
	cell[d] = merged
}

// hline draws a horizontal run from x1 to x2 on row y.
func (c *canvas) hline(x1, x2, y int, t LineType) {
	for x := x1; x <= x2; x++ {
		if x > x1 {
			c.add(x, y, Left, t)
		}
		if x < x2 {
			c.add(x, y, Right, t)
		}
	}
}

func (c *canvas) vline(x, y1, y2 int, t LineType) {
	for y := y1; y <= y2; y++ {
		if y > y1 {
			c.add(x, y, Up, t)
		}
		if y < y2 {
			c.add(x, y, Down, t)
		}
	}
}

// Render draws the diagram. Lines are combined cell by cell, so crossings and
// junctions come out as the matching glyph. Box text is written over box
// interiors; labels only fill cells no line passes through.
func Render(d *Diagram) Grid {
	bounds := d.Bounds()
	c := &canvas{w: max(bounds.X2+1, 0), h: max(bounds.Y2+1, 0)}
	c.cells = make([][4]LineType, c.w*c.h)

	for _, it := range d.Items {
		switch it := it.(type) {
		case *Box:
			c.hline(it.X, it.X+it.Width, it.Y, it.Edges[Up])
			c.hline(it.X, it.X+it.Width, it.Y+it.Height, it.Edges[Down])
			c.vline(it.X, it.Y, it.Y+it.Height, it.Edges[Left])
			c.vline(it.X+it.Width, it.Y, it.Y+it.Height, it.Edges[Right])
		case *Segment:
			if it.Horizontal() {
				c.hline(it.X1, it.X2, it.Y1, it.Type)
			} else {
				c.vline(it.X1, it.Y1, it.Y2, it.Type)
			}
		case *Node:
			for _, dir := range Directions {
				c.add(it.X, it.Y, dir, it.Lines[dir])
			}
		}
	}

	g := BlankGrid(c.w, c.h)
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			g[y][x] = GlyphFor(c.cells[y*c.w+x])
		}
	}

	for _, it := range d.Items {
		if b, ok := it.(*Box); ok {
			for _, a := range b.TextAreas {
				drawText(g, a, false)
			}
		}
	}
	for _, a := range d.Labels {
		drawText(g, a, true)
	}
	return g
}

func drawText(g Grid, a TextArea, onlyBlank bool) {
	for _, l := range a.Lines {
		for i, r := range []rune(l.Content) {
			if onlyBlank && g.At(l.X+i, l.Y) != ' ' {
				continue
			}
			g.Set(l.X+i, l.Y, r)
		}
	}
}
