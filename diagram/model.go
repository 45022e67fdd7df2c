package diagram

import "fmt"

// Handle addresses an item in a Diagram's arena. Handles stay valid for the
// life of the diagram; edits move items but never add or remove them.
type Handle int

// NoHandle marks an absent item or join.
const NoHandle Handle = -1

// Item is one of *Box, *Node, *LineEnd or *Segment.
type Item interface {
	// Bounds returns the cells the item occupies.
	Bounds() Rect
	isItem()
}

// Rect is an inclusive cell rectangle.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Overlaps reports whether r and o share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return r.X1 <= o.X2 && o.X1 <= r.X2 && r.Y1 <= o.Y2 && o.Y1 <= r.Y2
}

// Inside reports whether r lies entirely inside o.
func (r Rect) Inside(o Rect) bool {
	return r.X1 >= o.X1 && r.X2 <= o.X2 && r.Y1 >= o.Y1 && r.Y2 <= o.Y2
}

// Translate returns r shifted n cells in direction d.
func (r Rect) Translate(d Direction, n int) Rect {
	dx, dy := d.Delta()
	return Rect{r.X1 + dx*n, r.Y1 + dy*n, r.X2 + dx*n, r.Y2 + dy*n}
}

// Box is a rectangle whose border occupies columns X..X+Width and rows
// Y..Y+Height.
type Box struct {
	X, Y          int
	Width, Height int
	// Edges holds the weight of each side: Edges[Up] is the top edge.
	Edges     [4]LineType
	TextAreas []TextArea
}

func (*Box) isItem() {}

func (b *Box) Bounds() Rect {
	return Rect{b.X, b.Y, b.X + b.Width, b.Y + b.Height}
}

// Interior returns the cells inside the border. The rectangle is empty
// (X1 > X2 or Y1 > Y2) for boxes without an inside.
func (b *Box) Interior() Rect {
	return Rect{b.X + 1, b.Y + 1, b.X + b.Width - 1, b.Y + b.Height - 1}
}

// OnBorder reports whether (x, y) is one of the box's border cells.
func (b *Box) OnBorder(x, y int) bool {
	if !b.Bounds().Contains(x, y) {
		return false
	}
	return x == b.X || x == b.X+b.Width || y == b.Y || y == b.Y+b.Height
}

// Side returns the side of the box that (x, y) sits on. Corners and cells off
// the border report false.
func (b *Box) Side(x, y int) (Direction, bool) {
	horiz := x > b.X && x < b.X+b.Width
	vert := y > b.Y && y < b.Y+b.Height
	switch {
	case horiz && y == b.Y:
		return Up, true
	case horiz && y == b.Y+b.Height:
		return Down, true
	case vert && x == b.X:
		return Left, true
	case vert && x == b.X+b.Width:
		return Right, true
	}
	return Up, false
}

// Node is a point where lines bend, branch, cross or change weight.
type Node struct {
	X, Y int
	// Lines holds the weight leaving the node on each side.
	Lines [4]LineType
	// Joins holds the item reached by following each line: another point, or
	// the box whose border the line runs into.
	Joins [4]Handle
}

func (*Node) isItem() {}

func (n *Node) Bounds() Rect { return Rect{n.X, n.Y, n.X, n.Y} }

// LineEnd is the loose end of a line.
type LineEnd struct {
	X, Y int
	// Dir is the direction in which the line runs away from the end.
	Dir  Direction
	Type LineType
	Join Handle
}

func (*LineEnd) isItem() {}

func (e *LineEnd) Bounds() Rect { return Rect{e.X, e.Y, e.X, e.Y} }

// Segment is a maximal straight run of one line weight. Horizontal segments
// have Y1 == Y2 and X1 < X2, vertical ones X1 == X2 and Y1 < Y2. Both end
// cells belong to the segment.
type Segment struct {
	X1, Y1, X2, Y2 int
	Type           LineType
}

func (*Segment) isItem() {}

func (s *Segment) Bounds() Rect { return Rect{s.X1, s.Y1, s.X2, s.Y2} }

// Horizontal reports whether s runs along a row.
func (s *Segment) Horizontal() bool { return s.Y1 == s.Y2 }

// Length is the distance between the two end cells.
func (s *Segment) Length() int {
	if s.Horizontal() {
		return s.X2 - s.X1
	}
	return s.Y2 - s.Y1
}

// Along reports whether d runs parallel to s.
func (s *Segment) Along(d Direction) bool { return d.Horizontal() == s.Horizontal() }

// Ends returns the names of the segment's low and high ends: Left and Right
// for a horizontal segment, Up and Down for a vertical one.
func (s *Segment) Ends() [2]Direction {
	if s.Horizontal() {
		return [2]Direction{Left, Right}
	}
	return [2]Direction{Up, Down}
}

// End returns the cell at the named end.
func (s *Segment) End(end Direction) (x, y int) {
	if end == Left || end == Up {
		return s.X1, s.Y1
	}
	return s.X2, s.Y2
}

// EndAt returns which end of s lies on (x, y), if any.
func (s *Segment) EndAt(x, y int) (Direction, bool) {
	for _, e := range s.Ends() {
		if ex, ey := s.End(e); ex == x && ey == y {
			return e, true
		}
	}
	return Up, false
}

// Contains reports whether (x, y) is one of the segment's cells.
func (s *Segment) Contains(x, y int) bool { return s.Bounds().Contains(x, y) }

// TextLine is a run of text on one row.
type TextLine struct {
	X, Y    int
	Content string
}

// Width is the number of cells the text occupies.
func (l TextLine) Width() int { return len([]rune(l.Content)) }

// TextArea is a block of text lines that touch each other vertically, sorted
// by row and then column.
type TextArea struct {
	Lines []TextLine
}

// Bounds returns the smallest rectangle covering every line.
func (a TextArea) Bounds() Rect {
	if len(a.Lines) == 0 {
		return Rect{0, 0, -1, -1}
	}
	r := Rect{a.Lines[0].X, a.Lines[0].Y, a.Lines[0].X + a.Lines[0].Width() - 1, a.Lines[0].Y}
	for _, l := range a.Lines[1:] {
		r.X1 = min(r.X1, l.X)
		r.X2 = max(r.X2, l.X+l.Width()-1)
		r.Y1 = min(r.Y1, l.Y)
		r.Y2 = max(r.Y2, l.Y)
	}
	return r
}

// Text returns the lines joined with newlines.
func (a TextArea) Text() string {
	var s string
	for i, l := range a.Lines {
		if i > 0 {
			s += "\n"
		}
		s += l.Content
	}
	return s
}

func (a TextArea) translate(dx, dy int) {
	for i := range a.Lines {
		a.Lines[i].X += dx
		a.Lines[i].Y += dy
	}
}

// Diagram is the parsed model of a box-drawing diagram.
type Diagram struct {
	Items []Item
	// Labels hold the text found outside every box. They never move.
	Labels []TextArea
}

// Item returns the item behind h, or nil for an invalid handle.
func (d *Diagram) Item(h Handle) Item {
	if h < 0 || int(h) >= len(d.Items) {
		return nil
	}
	return d.Items[h]
}

func (d *Diagram) add(it Item) Handle {
	d.Items = append(d.Items, it)
	return Handle(len(d.Items) - 1)
}

// Boxes returns the handles of every box.
func (d *Diagram) Boxes() []Handle {
	var hs []Handle
	for h, it := range d.Items {
		if _, ok := it.(*Box); ok {
			hs = append(hs, Handle(h))
		}
	}
	return hs
}

// Segments returns the handles of every segment.
func (d *Diagram) Segments() []Handle {
	var hs []Handle
	for h, it := range d.Items {
		if _, ok := it.(*Segment); ok {
			hs = append(hs, Handle(h))
		}
	}
	return hs
}

// Points returns the handles of every node and line end.
func (d *Diagram) Points() []Handle {
	var hs []Handle
	for h, it := range d.Items {
		switch it.(type) {
		case *Node, *LineEnd:
			hs = append(hs, Handle(h))
		}
	}
	return hs
}

// PointAt returns the node or line end on (x, y).
func (d *Diagram) PointAt(x, y int) Handle {
	for h, it := range d.Items {
		switch p := it.(type) {
		case *Node:
			if p.X == x && p.Y == y {
				return Handle(h)
			}
		case *LineEnd:
			if p.X == x && p.Y == y {
				return Handle(h)
			}
		}
	}
	return NoHandle
}

// BoxBorderAt returns the box whose border passes through (x, y).
func (d *Diagram) BoxBorderAt(x, y int) Handle {
	for h, it := range d.Items {
		if b, ok := it.(*Box); ok && b.OnBorder(x, y) {
			return Handle(h)
		}
	}
	return NoHandle
}

// ItemAt picks the item a cursor at (x, y) refers to: a point, then a
// segment, then a box border, then the innermost box containing the cell.
func (d *Diagram) ItemAt(x, y int) Handle {
	if h := d.PointAt(x, y); h != NoHandle {
		return h
	}
	for h, it := range d.Items {
		if s, ok := it.(*Segment); ok && s.Contains(x, y) {
			return Handle(h)
		}
	}
	if h := d.BoxBorderAt(x, y); h != NoHandle {
		return h
	}
	best, area := NoHandle, 0
	for h, it := range d.Items {
		b, ok := it.(*Box)
		if !ok || !b.Bounds().Contains(x, y) {
			continue
		}
		if a := b.Width * b.Height; best == NoHandle || a < area {
			best, area = Handle(h), a
		}
	}
	return best
}

// TextAreaAt returns the box text area covering (x, y).
func (d *Diagram) TextAreaAt(x, y int) (TextArea, bool) {
	for _, it := range d.Items {
		b, ok := it.(*Box)
		if !ok {
			continue
		}
		for _, a := range b.TextAreas {
			for _, l := range a.Lines {
				if y == l.Y && x >= l.X && x < l.X+l.Width() {
					return a, true
				}
			}
		}
	}
	return TextArea{}, false
}

// Bounds returns the rectangle covering every item and label.
func (d *Diagram) Bounds() Rect {
	r := Rect{0, 0, -1, -1}
	grow := func(o Rect) {
		if o.X2 < o.X1 {
			return
		}
		if r.X2 < r.X1 {
			r = o
			return
		}
		r.X1, r.Y1 = min(r.X1, o.X1), min(r.Y1, o.Y1)
		r.X2, r.Y2 = max(r.X2, o.X2), max(r.Y2, o.Y2)
	}
	for _, it := range d.Items {
		grow(it.Bounds())
		if b, ok := it.(*Box); ok {
			for _, a := range b.TextAreas {
				grow(a.Bounds())
			}
		}
	}
	for _, a := range d.Labels {
		grow(a.Bounds())
	}
	return r
}

// Describe returns a short human readable name for the item behind h.
func (d *Diagram) Describe(h Handle) string {
	switch it := d.Item(h).(type) {
	case *Box:
		return fmt.Sprintf("box %dx%d at (%d,%d)", it.Width, it.Height, it.X, it.Y)
	case *Node:
		return fmt.Sprintf("node at (%d,%d)", it.X, it.Y)
	case *LineEnd:
		return fmt.Sprintf("line end at (%d,%d)", it.X, it.Y)
	case *Segment:
		axis := "vertical"
		if it.Horizontal() {
			axis = "horizontal"
		}
		return fmt.Sprintf("%s %s line (%d,%d)-(%d,%d)", it.Type, axis, it.X1, it.Y1, it.X2, it.Y2)
	}
	return "nothing"
}

// Clone returns a deep copy of d.
func (d *Diagram) Clone() *Diagram {
	c := &Diagram{
		Items:  make([]Item, len(d.Items)),
		Labels: cloneAreas(d.Labels),
	}
	for i, it := range d.Items {
		switch it := it.(type) {
		case *Box:
			b := *it
			b.TextAreas = cloneAreas(it.TextAreas)
			c.Items[i] = &b
		case *Node:
			n := *it
			c.Items[i] = &n
		case *LineEnd:
			e := *it
			c.Items[i] = &e
		case *Segment:
			s := *it
			c.Items[i] = &s
		}
	}
	return c
}

func cloneAreas(areas []TextArea) []TextArea {
	if areas == nil {
		return nil
	}
	out := make([]TextArea, len(areas))
	for i, a := range areas {
		out[i] = TextArea{Lines: append([]TextLine(nil), a.Lines...)}
	}
	return out
}
