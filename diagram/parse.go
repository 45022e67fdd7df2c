package diagram

import "fmt"

// parser holds the working state of one Parse call.
type parser struct {
	g Grid
	d *Diagram

	// owner maps border cells to their box.
	owner [][]Handle
	// points maps cells to the node or line end sitting on them.
	points [][]Handle
	// traced holds one bit per direction for every half-edge already followed.
	traced [][]uint8

	queue []trace
	segs  []Segment
}

// trace is a pending walk from a cell along one of its lines.
type trace struct {
	x, y int
	dir  Direction
	// box is set for walks leaving a box border, which must lead somewhere.
	box bool
}

// Parse reads diagram text into a Diagram. A line that leads nowhere fails
// the whole parse with an error wrapping ErrJoin.
func Parse(text string) (*Diagram, error) {
	p := newParser(NewGrid(text))
	p.findBoxes()
	if err := p.drain(); err != nil {
		return nil, err
	}
	if err := p.traceFree(); err != nil {
		return nil, err
	}
	for _, s := range MergeSegments(p.segs) {
		p.d.add(&s)
	}
	if err := p.findPoints(); err != nil {
		return nil, err
	}
	if err := p.resolveJoins(); err != nil {
		return nil, err
	}
	p.extractText()
	return p.d, nil
}

func newParser(g Grid) *parser {
	p := &parser{
		g:      g,
		d:      &Diagram{},
		owner:  make([][]Handle, g.Height()),
		points: make([][]Handle, g.Height()),
		traced: make([][]uint8, g.Height()),
	}
	for y := range g {
		p.owner[y] = make([]Handle, g.Width())
		p.points[y] = make([]Handle, g.Width())
		p.traced[y] = make([]uint8, g.Width())
		for x := range p.owner[y] {
			p.owner[y][x] = NoHandle
			p.points[y][x] = NoHandle
		}
	}
	return p
}

func (p *parser) ownerAt(x, y int) Handle {
	if !p.g.In(x, y) {
		return NoHandle
	}
	return p.owner[y][x]
}

func (p *parser) findBoxes() {
	for y := 0; y < p.g.Height(); y++ {
		for x := 0; x < p.g.Width(); x++ {
			if p.owner[y][x] != NoHandle {
				continue
			}
			if b, ok := p.boxAt(x, y); ok {
				p.claim(b, p.d.add(b))
			}
		}
	}
}

// boxAt checks whether (x, y) is the top-left corner of a box. The top and
// left edges give the size; the bottom and right edges are walked separately
// and must agree.
func (p *parser) boxAt(x, y int) (*Box, bool) {
	g := p.g
	if g.Line(x, y, Up) != None || g.Line(x, y, Left) != None {
		return nil, false
	}
	top, left := g.Line(x, y, Right), g.Line(x, y, Down)
	if top == None || left == None {
		return nil, false
	}

	w, ok := p.walk(x, y, Right, top)
	if !ok || !p.corner(x+w, y, Down, Up, Right) {
		return nil, false
	}
	h, ok := p.walk(x, y, Down, left)
	if !ok || !p.corner(x, y+h, Right, Left, Down) {
		return nil, false
	}
	bottom, right := g.Line(x, y+h, Right), g.Line(x+w, y, Down)

	if w2, ok := p.walk(x, y+h, Right, bottom); !ok || w2 != w || !p.corner(x+w, y+h, Up, Down, Right) {
		return nil, false
	}
	if h2, ok := p.walk(x+w, y, Down, right); !ok || h2 != h || !p.corner(x+w, y+h, Left, Right, Down) {
		return nil, false
	}
	if top == Single && right == Single && bottom == Single && left == Single {
		return nil, false
	}

	b := &Box{X: x, Y: y, Width: w, Height: h}
	b.Edges[Up], b.Edges[Right], b.Edges[Down], b.Edges[Left] = top, right, bottom, left
	for _, c := range borderCells(b) {
		if p.ownerAt(c[0], c[1]) != NoHandle {
			return nil, false
		}
	}
	return b, true
}

// walk follows a line of weight t from (x, y) in direction d and returns how
// many cells it spans. It fails if the line breaks off into a neighbour that
// does not continue it.
func (p *parser) walk(x, y int, d Direction, t LineType) (int, bool) {
	dx, dy := d.Delta()
	n := 0
	for p.g.Line(x+n*dx, y+n*dy, d) == t {
		if p.g.Line(x+(n+1)*dx, y+(n+1)*dy, d.Opposite()) != t {
			return 0, false
		}
		n++
	}
	return n, true
}

// corner reports whether (x, y) has a line on side want and none on the two
// sides that must stay open.
func (p *parser) corner(x, y int, want, open1, open2 Direction) bool {
	return p.g.Line(x, y, want) != None &&
		p.g.Line(x, y, open1) == None &&
		p.g.Line(x, y, open2) == None
}

func borderCells(b *Box) [][2]int {
	var cells [][2]int
	for x := b.X; x <= b.X+b.Width; x++ {
		cells = append(cells, [2]int{x, b.Y}, [2]int{x, b.Y + b.Height})
	}
	for y := b.Y + 1; y < b.Y+b.Height; y++ {
		cells = append(cells, [2]int{b.X, y}, [2]int{b.X + b.Width, y})
	}
	return cells
}

// claim marks the border of b and queues a trace for every line that leaves
// a side, outwards or inwards.
func (p *parser) claim(b *Box, h Handle) {
	for _, c := range borderCells(b) {
		p.owner[c[1]][c[0]] = h
	}
	for _, c := range borderCells(b) {
		side, ok := b.Side(c[0], c[1])
		if !ok {
			continue
		}
		for _, d := range [2]Direction{side, side.Opposite()} {
			if p.g.Line(c[0], c[1], d) != None {
				p.queue = append(p.queue, trace{x: c[0], y: c[1], dir: d, box: true})
			}
		}
	}
}

func (p *parser) isTraced(x, y int, d Direction) bool {
	return p.traced[y][x]&(1<<d) != 0
}

func (p *parser) mark(x, y int, d Direction) {
	p.traced[y][x] |= 1 << d
}

func (p *parser) drain() error {
	for len(p.queue) > 0 {
		t := p.queue[0]
		p.queue = p.queue[1:]
		if err := p.follow(t); err != nil {
			return err
		}
	}
	return nil
}

// follow walks one trace to the end of its straight run, records the run as a
// segment and queues the perpendicular lines branching off it.
func (p *parser) follow(t trace) error {
	if p.isTraced(t.x, t.y, t.dir) {
		return nil
	}
	if !p.g.connects(t.x, t.y, t.dir) {
		if t.box {
			return fmt.Errorf("%w: %s line leaving box border at (%d,%d) stops short", ErrJoin, t.dir, t.x, t.y)
		}
		return nil
	}
	typ := p.g.Line(t.x, t.y, t.dir)
	dx, dy := t.dir.Delta()
	x, y := t.x, t.y
	if p.ownerAt(x, y) == NoHandle {
		p.branch(x, y, t.dir)
	}
	for p.g.Line(x, y, t.dir) == typ && p.g.connects(x, y, t.dir) && !p.isTraced(x, y, t.dir) {
		p.mark(x, y, t.dir)
		p.mark(x+dx, y+dy, t.dir.Opposite())
		x, y = x+dx, y+dy
		if p.ownerAt(x, y) != NoHandle {
			break
		}
		p.branch(x, y, t.dir)
	}
	if x == t.x && y == t.y {
		return nil
	}
	p.segs = append(p.segs, newSegment(t.x, t.y, x, y, typ))
	return nil
}

func (p *parser) branch(x, y int, d Direction) {
	for _, side := range [2]Direction{(d + 1) % 4, (d + 3) % 4} {
		if p.g.Line(x, y, side) != None && !p.isTraced(x, y, side) {
			p.queue = append(p.queue, trace{x: x, y: y, dir: side})
		}
	}
}

// traceFree picks up lines that no box leads to.
func (p *parser) traceFree() error {
	for y := 0; y < p.g.Height(); y++ {
		for x := 0; x < p.g.Width(); x++ {
			if p.owner[y][x] != NoHandle {
				continue
			}
			for _, d := range [2]Direction{Right, Down} {
				if p.g.connects(x, y, d) && !p.isTraced(x, y, d) {
					p.queue = append(p.queue, trace{x: x, y: y, dir: d})
					if err := p.drain(); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func newSegment(x1, y1, x2, y2 int, t LineType) Segment {
	if x2 < x1 || y2 < y1 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	return Segment{X1: x1, Y1: y1, X2: x2, Y2: y2, Type: t}
}

// findPoints turns every line cell off a box border into a node when it has
// lines on both axes, or a line end when its line continues on one side only.
func (p *parser) findPoints() error {
	g := p.g
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			r := g.At(x, y)
			if p.owner[y][x] != NoHandle || !IsLineGlyph(r) {
				continue
			}
			sides := Sides(r)
			horiz := sides[Left] != None || sides[Right] != None
			vert := sides[Up] != None || sides[Down] != None
			if horiz && vert {
				n := &Node{X: x, Y: y, Lines: sides}
				for i := range n.Joins {
					n.Joins[i] = NoHandle
				}
				p.points[y][x] = p.d.add(n)
				continue
			}
			a, b := Up, Down
			if horiz {
				a, b = Left, Right
			}
			ca, cb := g.connects(x, y, a), g.connects(x, y, b)
			switch {
			case !ca && !cb:
				return fmt.Errorf("%w: stray %q at (%d,%d)", ErrJoin, r, x, y)
			case ca != cb:
				dir := a
				if cb {
					dir = b
				}
				p.points[y][x] = p.d.add(&LineEnd{X: x, Y: y, Dir: dir, Type: sides[dir], Join: NoHandle})
			}
		}
	}
	return nil
}

// resolveJoins links every point to the item reached by following each of
// its lines. Point pairs see each other, so the relation is symmetric.
func (p *parser) resolveJoins() error {
	for _, h := range p.d.Points() {
		switch pt := p.d.Items[h].(type) {
		case *Node:
			for _, d := range Directions {
				if pt.Lines[d] == None {
					continue
				}
				j, err := p.partner(pt.X, pt.Y, d)
				if err != nil {
					return err
				}
				pt.Joins[d] = j
			}
		case *LineEnd:
			j, err := p.partner(pt.X, pt.Y, pt.Dir)
			if err != nil {
				return err
			}
			pt.Join = j
		}
	}
	return nil
}

func (p *parser) partner(x, y int, d Direction) (Handle, error) {
	x0, y0 := x, y
	dx, dy := d.Delta()
	for p.g.connects(x, y, d) {
		x, y = x+dx, y+dy
		if h := p.ownerAt(x, y); h != NoHandle {
			return h, nil
		}
		if h := p.points[y][x]; h != NoHandle {
			return h, nil
		}
	}
	return NoHandle, fmt.Errorf("%w: %s line leaving (%d,%d) stops short", ErrJoin, d, x0, y0)
}
