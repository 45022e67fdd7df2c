package diagram

import (
	"sort"
	"strings"
)

// extractText collects the text inside every box, leaving out boxes nested
// within it, and the text outside every box as labels.
func (p *parser) extractText() {
	boxes := p.d.Boxes()
	for _, h := range boxes {
		b := p.d.Items[h].(*Box)
		inner := b.Interior()
		var nested []Rect
		for _, o := range boxes {
			if o != h && p.d.Items[o].Bounds().Inside(inner) {
				nested = append(nested, p.d.Items[o].Bounds())
			}
		}
		b.TextAreas = GroupTextLines(scanText(p.g, inner, nested))
	}

	var all []Rect
	for _, h := range boxes {
		all = append(all, p.d.Items[h].Bounds())
	}
	full := Rect{0, 0, p.g.Width() - 1, p.g.Height() - 1}
	p.d.Labels = GroupTextLines(scanText(p.g, full, all))
}

// scanText returns the runs of non-line characters inside area, skipping the
// cells covered by any of the excluded rectangles. Runs are trimmed of
// surrounding spaces and empty runs are dropped.
func scanText(g Grid, area Rect, excluded []Rect) []TextLine {
	var lines []TextLine
	for y := area.Y1; y <= area.Y2; y++ {
		start := -1
		flush := func(end int) {
			if start < 0 {
				return
			}
			run := string(g[y][start:end])
			trimmed := strings.TrimLeft(run, " ")
			lead := len([]rune(run)) - len([]rune(trimmed))
			trimmed = strings.TrimRight(trimmed, " ")
			if trimmed != "" {
				lines = append(lines, TextLine{X: start + lead, Y: y, Content: trimmed})
			}
			start = -1
		}
		for x := area.X1; x <= area.X2; x++ {
			if IsLineGlyph(g.At(x, y)) || coveredBy(x, y, excluded) {
				flush(x)
				continue
			}
			if start < 0 {
				start = x
			}
		}
		flush(area.X2 + 1)
	}
	return lines
}

func coveredBy(x, y int, rects []Rect) bool {
	for _, r := range rects {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}

// GroupTextLines groups lines into areas. Two lines belong together when
// they sit on consecutive rows and their columns overlap; the relation is
// applied transitively. Lines are expected in row-major order, which is also
// the order of the lines within each area and of the areas themselves.
func GroupTextLines(lines []TextLine) []TextArea {
	group := make([]int, len(lines))
	for i := range group {
		group[i] = -1
	}
	var areas []TextArea
	for i := range lines {
		if group[i] >= 0 {
			continue
		}
		id := len(areas)
		group[i] = id
		members := []int{i}
		for queue := []int{i}; len(queue) > 0; queue = queue[1:] {
			a := lines[queue[0]]
			for j, b := range lines {
				if group[j] < 0 && touching(a, b) {
					group[j] = id
					members = append(members, j)
					queue = append(queue, j)
				}
			}
		}
		sort.Slice(members, func(a, b int) bool {
			la, lb := lines[members[a]], lines[members[b]]
			if la.Y != lb.Y {
				return la.Y < lb.Y
			}
			return la.X < lb.X
		})
		area := TextArea{}
		for _, m := range members {
			area.Lines = append(area.Lines, lines[m])
		}
		areas = append(areas, area)
	}
	return areas
}

func touching(a, b TextLine) bool {
	if a.Y-b.Y != 1 && b.Y-a.Y != 1 {
		return false
	}
	return a.X <= b.X+b.Width()-1 && b.X <= a.X+a.Width()-1
}
