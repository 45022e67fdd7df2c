package diagram

import "fmt"

// Apply commits edits produced by a Plan. The edits are checked before the
// diagram is touched, so an invalid list leaves d unchanged.
func (d *Diagram) Apply(edits []Edit) error {
	for _, e := range edits {
		it := d.Item(e.Item)
		if it == nil {
			return fmt.Errorf("%w: handle %d", ErrNoItem, e.Item)
		}
		if e.Kind == EditAdjust {
			s, ok := it.(*Segment)
			if !ok || !s.Along(e.End) || !s.Along(e.Dir) {
				return fmt.Errorf("%w: cannot adjust %s", ErrWrongAxis, d.Describe(e.Item))
			}
		}
	}
	for _, e := range edits {
		dx, dy := e.Dir.Delta()
		switch it := d.Items[e.Item].(type) {
		case *Box:
			it.X += dx
			it.Y += dy
			for _, a := range it.TextAreas {
				a.translate(dx, dy)
			}
		case *Node:
			it.X += dx
			it.Y += dy
		case *LineEnd:
			it.X += dx
			it.Y += dy
		case *Segment:
			switch {
			case e.Kind == EditMove:
				it.X1, it.Y1 = it.X1+dx, it.Y1+dy
				it.X2, it.Y2 = it.X2+dx, it.Y2+dy
			case endPart(e.End) == partLow:
				it.X1, it.Y1 = it.X1+dx, it.Y1+dy
			default:
				it.X2, it.Y2 = it.X2+dx, it.Y2+dy
			}
		}
	}
	return nil
}

// Validate checks that the diagram still has a shape the parser would read
// back the same way. Failures wrap ErrUnsupported.
func (d *Diagram) Validate() error {
	for h, it := range d.Items {
		if r := it.Bounds(); r.X1 < 0 || r.Y1 < 0 {
			return fmt.Errorf("%w: %s would leave the top-left corner of the diagram", ErrUnsupported, d.Describe(Handle(h)))
		}
	}
	var segs []*Segment
	for h, it := range d.Items {
		s, ok := it.(*Segment)
		if !ok {
			continue
		}
		segs = append(segs, s)
		if s.Length() < 1 {
			return fmt.Errorf("%w: %s would collapse", ErrUnsupported, d.Describe(Handle(h)))
		}
		for _, end := range s.Ends() {
			x, y := s.End(end)
			if !d.terminates(s, x, y) {
				return fmt.Errorf("%w: line end at (%d,%d) would need a new bend", ErrUnsupported, x, y)
			}
		}
		if err := d.checkCrossings(Handle(h), s); err != nil {
			return err
		}
	}
	for i, a := range segs {
		for _, b := range segs[i+1:] {
			if a.Horizontal() == b.Horizontal() && a.Bounds().Overlaps(b.Bounds()) {
				return fmt.Errorf("%w: lines at (%d,%d) and (%d,%d) would overlap", ErrUnsupported, a.X1, a.Y1, b.X1, b.Y1)
			}
		}
	}
	for h, it := range d.Items {
		if !d.onItsLines(it) {
			return fmt.Errorf("%w: %s would come off its line", ErrUnsupported, d.Describe(Handle(h)))
		}
	}
	boxes := d.Boxes()
	for i, a := range boxes {
		for _, b := range boxes[i+1:] {
			if !boxesApart(d.Items[a].(*Box), d.Items[b].(*Box)) {
				return fmt.Errorf("%w: %s would overlap %s", ErrUnsupported, d.Describe(a), d.Describe(b))
			}
		}
	}
	return nil
}

// terminates reports whether the end of s at (x, y) rests on a point or on a
// box side the line meets at a right angle.
func (d *Diagram) terminates(s *Segment, x, y int) bool {
	if d.PointAt(x, y) != NoHandle {
		return true
	}
	for _, it := range d.Items {
		if b, ok := it.(*Box); ok {
			if side, ok := b.Side(x, y); ok && s.Along(side) {
				return true
			}
		}
	}
	return false
}

// checkCrossings rejects a line running over a box border anywhere but at
// its ends.
func (d *Diagram) checkCrossings(h Handle, s *Segment) error {
	for _, it := range d.Items {
		b, ok := it.(*Box)
		if !ok || !b.Bounds().Overlaps(s.Bounds()) {
			continue
		}
		for x := s.X1; x <= s.X2; x++ {
			for y := s.Y1; y <= s.Y2; y++ {
				if (x == s.X1 && y == s.Y1) || (x == s.X2 && y == s.Y2) {
					continue
				}
				if b.OnBorder(x, y) {
					return fmt.Errorf("%w: %s would cross a box border at (%d,%d)", ErrUnsupported, d.Describe(h), x, y)
				}
			}
		}
	}
	return nil
}

// onItsLines reports whether every line a point claims to carry is still
// drawn from it.
func (d *Diagram) onItsLines(it Item) bool {
	switch p := it.(type) {
	case *Node:
		for _, dir := range Directions {
			if p.Lines[dir] != None && !d.lineFrom(p.X, p.Y, dir, p.Lines[dir]) {
				return false
			}
		}
	case *LineEnd:
		if !d.lineFrom(p.X, p.Y, p.Dir, p.Type) {
			return false
		}
		back := p.Dir.Opposite()
		dx, dy := back.Delta()
		for _, it := range d.Items {
			if s, ok := it.(*Segment); ok && s.Along(back) && s.Contains(p.X, p.Y) && s.Contains(p.X+dx, p.Y+dy) {
				return false
			}
		}
	}
	return true
}

func (d *Diagram) lineFrom(x, y int, dir Direction, t LineType) bool {
	dx, dy := dir.Delta()
	for _, it := range d.Items {
		if s, ok := it.(*Segment); ok && s.Type == t && s.Along(dir) && s.Contains(x, y) && s.Contains(x+dx, y+dy) {
			return true
		}
	}
	return false
}

func boxesApart(a, b *Box) bool {
	ra, rb := a.Bounds(), b.Bounds()
	return !ra.Overlaps(rb) || ra.Inside(b.Interior()) || rb.Inside(a.Interior())
}
