package diagram

import "fmt"

// Options control how much room a move keeps between the moving item and
// whatever lies ahead of it.
type Options struct {
	HSpacing int `toml:"h_spacing"`
	VSpacing int `toml:"v_spacing"`
}

// DefaultOptions keeps one blank column beside a moving item and no blank
// rows.
func DefaultOptions() Options {
	return Options{HSpacing: 1, VSpacing: 0}
}

// EditKind says what an Edit does.
type EditKind int

const (
	// EditMove shifts the whole item one cell.
	EditMove EditKind = iota
	// EditAdjust moves one end of a line one cell along the line, making it
	// longer or shorter.
	EditAdjust
)

func (k EditKind) String() string {
	if k == EditAdjust {
		return "adjust"
	}
	return "move"
}

// Edit is one pending change produced by a Plan.
type Edit struct {
	Kind EditKind
	Item Handle
	// End names the end of the line an EditAdjust applies to.
	End Direction
	Dir Direction
}

func (e Edit) String() string {
	if e.Kind == EditAdjust {
		return fmt.Sprintf("adjust #%d %s end %s", e.Item, e.End, e.Dir)
	}
	return fmt.Sprintf("move #%d %s", e.Item, e.Dir)
}

// part is the piece of an item an edit touches. Only lines have ends.
type part int

const (
	partWhole part = iota
	partLow
	partHigh
)

func endPart(end Direction) part {
	if end == Left || end == Up {
		return partLow
	}
	return partHigh
}

type editKey struct {
	h    Handle
	part part
}

// Plan accumulates the edits needed to move items without breaking any
// attachment. Every item gets at most one direction; asking it to go another
// way is a conflict. Nothing touches the diagram until the edits are applied.
type Plan struct {
	d    *Diagram
	opts Options

	dir   map[Handle]Direction
	seen  map[editKey]bool
	order []Handle
}

// NewPlan starts an empty plan over d.
func NewPlan(d *Diagram, opts Options) *Plan {
	return &Plan{
		d:    d,
		opts: opts,
		dir:  map[Handle]Direction{},
		seen: map[editKey]bool{},
	}
}

// TryMove plans moving the item behind h one cell in direction dir. It
// returns the edits to apply, or an error wrapping ErrWrongAxis or
// ErrUnsupported. d is never modified. Every item in a single move goes the
// same way, so ErrConflict only comes from composing calls on a Plan.
func TryMove(d *Diagram, h Handle, dir Direction, opts Options) ([]Edit, error) {
	p := NewPlan(d, opts)
	if err := p.Move(h, dir); err != nil {
		return nil, err
	}
	return p.Edits()
}

// Move adds moving the item behind h by one cell, along with everything that
// has to follow. Lines only move along their own axis.
func (p *Plan) Move(h Handle, dir Direction) error {
	switch it := p.d.Item(h).(type) {
	case nil:
		return fmt.Errorf("%w: handle %d", ErrNoItem, h)
	case *Segment:
		if !it.Along(dir) {
			return fmt.Errorf("%w: %s cannot move %s", ErrWrongAxis, p.d.Describe(h), dir)
		}
	}
	return p.push(h, dir)
}

// Adjust adds moving one end of the line behind h by one cell.
func (p *Plan) Adjust(h Handle, end, dir Direction) error {
	s, ok := p.d.Item(h).(*Segment)
	if !ok {
		return fmt.Errorf("%w: handle %d is not a line", ErrNoItem, h)
	}
	if !s.Along(end) {
		return fmt.Errorf("%w: %s has no %s end", ErrWrongAxis, p.d.Describe(h), end)
	}
	return p.adjust(h, s, end, dir)
}

// Edits returns the planned edits in the order items were first reached.
// The edits are tried on a copy of the diagram first; a result that breaks
// the diagram's shape is reported as ErrUnsupported.
func (p *Plan) Edits() ([]Edit, error) {
	edits := p.edits()
	c := p.d.Clone()
	if err := c.Apply(edits); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return edits, nil
}

func (p *Plan) edits() []Edit {
	var edits []Edit
	for _, h := range p.order {
		dir := p.dir[h]
		if p.seen[editKey{h, partWhole}] {
			edits = append(edits, Edit{Kind: EditMove, Item: h, Dir: dir})
			continue
		}
		s := p.d.Items[h].(*Segment)
		for _, end := range s.Ends() {
			if p.seen[editKey{h, endPart(end)}] {
				edits = append(edits, Edit{Kind: EditAdjust, Item: h, End: end, Dir: dir})
			}
		}
	}
	return edits
}

// claim records that part of h moves in dir. It reports done when that part
// was already queued in the same direction.
func (p *Plan) claim(h Handle, pt part, dir Direction) (bool, error) {
	prev, moving := p.dir[h]
	if moving && prev != dir {
		return false, fmt.Errorf("%w: %s is moving %s, not %s", ErrConflict, p.d.Describe(h), prev, dir)
	}
	key := editKey{h, pt}
	if p.seen[key] {
		return true, nil
	}
	if !moving {
		p.dir[h] = dir
		p.order = append(p.order, h)
	}
	p.seen[key] = true
	return false, nil
}

// push moves an item that has to get out of the way or follow along.
func (p *Plan) push(h Handle, dir Direction) error {
	switch it := p.d.Items[h].(type) {
	case *Box:
		return p.moveBox(h, it, dir)
	case *Node, *LineEnd:
		return p.movePoint(h, dir)
	case *Segment:
		if it.Along(dir) {
			return p.moveSegment(h, it, dir)
		}
		return p.shift(h, it, dir)
	}
	return fmt.Errorf("%w: handle %d", ErrNoItem, h)
}

func (p *Plan) moveBox(h Handle, b *Box, dir Direction) error {
	if done, err := p.claim(h, partWhole, dir); done || err != nil {
		return err
	}
	related := p.related(h)

	for _, sh := range p.attached(b) {
		s := p.d.Items[sh].(*Segment)
		for _, end := range s.Ends() {
			if x, y := s.End(end); b.OnBorder(x, y) {
				if err := p.adjust(sh, s, end, dir); err != nil {
					return err
				}
			}
		}
	}

	inner := b.Interior()
	for ih, it := range p.d.Items {
		if related[Handle(ih)] || !it.Bounds().Inside(inner) {
			continue
		}
		related[Handle(ih)] = true
		if err := p.push(Handle(ih), dir); err != nil {
			return err
		}
	}

	return p.clearAhead(b.Bounds().Translate(dir, 1), dir, related)
}

// moveSegment moves a line along its own axis. Whatever sits on it or at
// its ends comes along.
func (p *Plan) moveSegment(h Handle, s *Segment, dir Direction) error {
	if done, err := p.claim(h, partWhole, dir); done || err != nil {
		return err
	}
	if err := p.carry(s, dir, true); err != nil {
		return err
	}
	return p.clearAhead(s.Bounds().Translate(dir, 1), dir, p.related(h))
}

// shift moves a line sideways. Points on it follow; a box at either end
// stays put and the end slides along the box side.
func (p *Plan) shift(h Handle, s *Segment, dir Direction) error {
	if done, err := p.claim(h, partWhole, dir); done || err != nil {
		return err
	}
	if err := p.carry(s, dir, false); err != nil {
		return err
	}
	return p.clearAhead(s.Bounds().Translate(dir, 1), dir, p.related(h))
}

// carry pushes the points on s and, when boxes is set, the boxes at its ends.
func (p *Plan) carry(s *Segment, dir Direction, boxes bool) error {
	for _, ph := range p.pointsOn(s) {
		if err := p.push(ph, dir); err != nil {
			return err
		}
	}
	if !boxes {
		return nil
	}
	for _, end := range s.Ends() {
		if bh := p.d.BoxBorderAt(s.End(end)); bh != NoHandle {
			if err := p.push(bh, dir); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Plan) movePoint(h Handle, dir Direction) error {
	if done, err := p.claim(h, partWhole, dir); done || err != nil {
		return err
	}
	r := p.d.Items[h].Bounds()
	for _, sh := range p.segmentsThrough(r.X1, r.Y1) {
		s := p.d.Items[sh].(*Segment)
		end, atEnd := s.EndAt(r.X1, r.Y1)
		var err error
		switch {
		case !s.Along(dir):
			err = p.shift(sh, s, dir)
		case atEnd:
			err = p.adjust(sh, s, end, dir)
		}
		if err != nil {
			return err
		}
	}
	return p.clearAhead(r.Translate(dir, 1), dir, p.related(h))
}

// adjust moves one end of s. Along the line this stretches or shrinks it and
// drags whatever sits on that end; across the line the whole line shifts.
func (p *Plan) adjust(h Handle, s *Segment, end, dir Direction) error {
	if !s.Along(dir) {
		return p.shift(h, s, dir)
	}
	if done, err := p.claim(h, endPart(end), dir); done || err != nil {
		return err
	}
	x, y := s.End(end)
	if ph := p.d.PointAt(x, y); ph != NoHandle {
		if err := p.push(ph, dir); err != nil {
			return err
		}
	}
	if bh := p.d.BoxBorderAt(x, y); bh != NoHandle {
		return p.push(bh, dir)
	}
	return nil
}

// clearAhead pushes every unrelated item within the spacing ahead of an
// item whose new footprint is moved.
func (p *Plan) clearAhead(moved Rect, dir Direction, related map[Handle]bool) error {
	zone := p.zone(moved, dir)
	for ih, it := range p.d.Items {
		if related[Handle(ih)] || !obstructs(it, zone) {
			continue
		}
		if err := p.push(Handle(ih), dir); err != nil {
			return err
		}
	}
	return nil
}

// zone is the strip on the leading side of moved, as deep as the spacing
// configured for dir plus the row or column moved onto.
func (p *Plan) zone(moved Rect, dir Direction) Rect {
	hs, vs := p.opts.HSpacing, p.opts.VSpacing
	switch dir {
	case Right:
		return Rect{moved.X2, moved.Y1, moved.X2 + hs, moved.Y2}
	case Left:
		return Rect{moved.X1 - hs, moved.Y1, moved.X1, moved.Y2}
	case Down:
		return Rect{moved.X1, moved.Y2, moved.X2, moved.Y2 + vs}
	default:
		return Rect{moved.X1, moved.Y1 - vs, moved.X2, moved.Y1}
	}
}

// obstructs reports whether it occupies any cell of zone. The inside of a box
// is free space.
func obstructs(it Item, zone Rect) bool {
	if !it.Bounds().Overlaps(zone) {
		return false
	}
	if b, ok := it.(*Box); ok {
		return !zone.Inside(b.Interior())
	}
	return true
}

// related returns the items that move with h by construction and so never
// count as being in its way: the network of lines and points reachable from
// h, and the boxes that network ends on. The network does not continue
// through a box, so every item in one network gets the same set.
func (p *Plan) related(h Handle) map[Handle]bool {
	rel := map[Handle]bool{h: true}
	var queue []Handle
	switch it := p.d.Items[h].(type) {
	case *Box:
		queue = p.attached(it)
	case *Segment:
		queue = []Handle{h}
	default:
		r := it.Bounds()
		queue = p.segmentsThrough(r.X1, r.Y1)
	}
	for _, sh := range queue {
		rel[sh] = true
	}
	for ; len(queue) > 0; queue = queue[1:] {
		s := p.d.Items[queue[0]].(*Segment)
		for _, ph := range p.pointsOn(s) {
			if rel[ph] {
				continue
			}
			rel[ph] = true
			r := p.d.Items[ph].Bounds()
			for _, oh := range p.segmentsThrough(r.X1, r.Y1) {
				if !rel[oh] {
					rel[oh] = true
					queue = append(queue, oh)
				}
			}
		}
		for _, end := range s.Ends() {
			if bh := p.d.BoxBorderAt(s.End(end)); bh != NoHandle {
				rel[bh] = true
			}
		}
	}
	return rel
}

// attached returns the lines with an end on one of b's sides.
func (p *Plan) attached(b *Box) []Handle {
	var hs []Handle
	for _, sh := range p.d.Segments() {
		s := p.d.Items[sh].(*Segment)
		for _, end := range s.Ends() {
			if side, ok := b.Side(s.End(end)); ok && s.Along(side) {
				hs = append(hs, sh)
				break
			}
		}
	}
	return hs
}

func (p *Plan) pointsOn(s *Segment) []Handle {
	var hs []Handle
	for _, ph := range p.d.Points() {
		if r := p.d.Items[ph].Bounds(); s.Contains(r.X1, r.Y1) {
			hs = append(hs, ph)
		}
	}
	return hs
}

func (p *Plan) segmentsThrough(x, y int) []Handle {
	var hs []Handle
	for _, sh := range p.d.Segments() {
		if p.d.Items[sh].(*Segment).Contains(x, y) {
			hs = append(hs, sh)
		}
	}
	return hs
}
