package diagram

import (
	"errors"
	"strings"
	"testing"
)

func rows(lines ...string) string {
	return strings.Join(lines, "\n")
}

func mustParse(t *testing.T, text string) *Diagram {
	t.Helper()
	d, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return d
}

func TestParseBoxWithAttachedLine(t *testing.T) {
	d := mustParse(t, rows(
		"╔══╗",
		"║  ╟──",
		"╚══╝",
	))

	boxes := d.Boxes()
	if len(boxes) != 1 {
		t.Fatalf("got %d boxes, want 1", len(boxes))
	}
	b := d.Item(boxes[0]).(*Box)
	if b.X != 0 || b.Y != 0 || b.Width != 3 || b.Height != 2 {
		t.Errorf("box = %+v, want 3x2 at origin", *b)
	}
	for _, dir := range Directions {
		if b.Edges[dir] != Double {
			t.Errorf("edge %s = %s, want double", dir, b.Edges[dir])
		}
	}

	segs := d.Segments()
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	s := d.Item(segs[0]).(*Segment)
	if *s != (Segment{X1: 3, Y1: 1, X2: 5, Y2: 1, Type: Single}) {
		t.Errorf("segment = %+v", *s)
	}
	if s.Length() != 2 {
		t.Errorf("length = %d, want 2", s.Length())
	}

	points := d.Points()
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	end, ok := d.Item(points[0]).(*LineEnd)
	if !ok {
		t.Fatalf("point is %T, want *LineEnd", d.Item(points[0]))
	}
	if end.X != 5 || end.Y != 1 || end.Dir != Left || end.Type != Single {
		t.Errorf("line end = %+v", *end)
	}
	if end.Join != boxes[0] {
		t.Errorf("line end joins %d, want box %d", end.Join, boxes[0])
	}
	if side, ok := b.Side(s.X1, s.Y1); !ok || side != Right {
		t.Errorf("segment does not start on the right side of the box")
	}
}

func TestParseAllSingleRectangleIsNotABox(t *testing.T) {
	d := mustParse(t, rows(
		"┌──┐",
		"│  │",
		"└──┘",
	))
	if n := len(d.Boxes()); n != 0 {
		t.Fatalf("got %d boxes, want 0", n)
	}
	if n := len(d.Segments()); n != 4 {
		t.Errorf("got %d segments, want 4", n)
	}
	for _, h := range d.Points() {
		if _, ok := d.Item(h).(*Node); !ok {
			t.Errorf("%s is not a node", d.Describe(h))
		}
	}
	if n := len(d.Points()); n != 4 {
		t.Errorf("got %d points, want 4 corner nodes", n)
	}
}

func TestParseBoxEdgeTypes(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		boxes int
		edges [4]LineType
	}{
		{
			name:  "double top only",
			text:  rows("╒══╕", "│  │", "└──┘"),
			boxes: 1,
			edges: [4]LineType{Double, Single, Single, Single},
		},
		{
			name:  "double sides",
			text:  rows("╓──╖", "║  ║", "╙──╜"),
			boxes: 1,
			edges: [4]LineType{Single, Double, Single, Double},
		},
		{
			name:  "all single",
			text:  rows("┌─┐", "└─┘"),
			boxes: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustParse(t, tt.text)
			boxes := d.Boxes()
			if len(boxes) != tt.boxes {
				t.Fatalf("got %d boxes, want %d", len(boxes), tt.boxes)
			}
			if tt.boxes == 0 {
				return
			}
			if got := d.Item(boxes[0]).(*Box).Edges; got != tt.edges {
				t.Errorf("edges = %v, want %v", got, tt.edges)
			}
		})
	}
}

func TestParseRejectsBoxWithShortBottomEdge(t *testing.T) {
	d := mustParse(t, rows(
		"╔══╗",
		"║  ║",
		"╚═╗║",
		"  ╚╝",
	))
	if n := len(d.Boxes()); n != 0 {
		t.Fatalf("got %d boxes, want 0", n)
	}
	if n := len(d.Points()); n != 6 {
		t.Errorf("got %d points, want 6 bends", n)
	}
}

func TestParseMergesCollinearSegments(t *testing.T) {
	d := mustParse(t, rows(
		"╔═╗",
		"║ ║",
		"╚╤╝",
		" │",
		"─┴─",
	))

	var horiz []*Segment
	for _, h := range d.Segments() {
		if s := d.Item(h).(*Segment); s.Horizontal() {
			horiz = append(horiz, s)
		}
	}
	if len(horiz) != 1 {
		t.Fatalf("got %d horizontal segments, want 1", len(horiz))
	}
	if *horiz[0] != (Segment{X1: 0, Y1: 4, X2: 2, Y2: 4, Type: Single}) {
		t.Errorf("merged segment = %+v", *horiz[0])
	}

	node := d.Item(d.PointAt(1, 4)).(*Node)
	if node.Joins[Up] != d.Boxes()[0] {
		t.Errorf("node up join = %d, want the box", node.Joins[Up])
	}
}

func TestMergeSegments(t *testing.T) {
	tests := []struct {
		name string
		in   []Segment
		want []Segment
	}{
		{
			name: "shared end",
			in:   []Segment{{X1: 3, Y1: 0, X2: 6, Y2: 0, Type: Single}, {X1: 0, Y1: 0, X2: 3, Y2: 0, Type: Single}},
			want: []Segment{{X1: 0, Y1: 0, X2: 6, Y2: 0, Type: Single}},
		},
		{
			name: "overlap",
			in:   []Segment{{X1: 0, Y1: 2, X2: 4, Y2: 2, Type: Double}, {X1: 2, Y1: 2, X2: 8, Y2: 2, Type: Double}},
			want: []Segment{{X1: 0, Y1: 2, X2: 8, Y2: 2, Type: Double}},
		},
		{
			name: "contained",
			in:   []Segment{{X1: 0, Y1: 0, X2: 0, Y2: 9, Type: Single}, {X1: 0, Y1: 3, X2: 0, Y2: 5, Type: Single}},
			want: []Segment{{X1: 0, Y1: 0, X2: 0, Y2: 9, Type: Single}},
		},
		{
			name: "side by side stay apart",
			in:   []Segment{{X1: 0, Y1: 0, X2: 2, Y2: 0, Type: Single}, {X1: 3, Y1: 0, X2: 5, Y2: 0, Type: Single}},
			want: []Segment{{X1: 0, Y1: 0, X2: 2, Y2: 0, Type: Single}, {X1: 3, Y1: 0, X2: 5, Y2: 0, Type: Single}},
		},
		{
			name: "different weights stay apart",
			in:   []Segment{{X1: 0, Y1: 0, X2: 2, Y2: 0, Type: Single}, {X1: 2, Y1: 0, X2: 5, Y2: 0, Type: Double}},
			want: []Segment{{X1: 0, Y1: 0, X2: 2, Y2: 0, Type: Single}, {X1: 2, Y1: 0, X2: 5, Y2: 0, Type: Double}},
		},
		{
			name: "different rows stay apart",
			in:   []Segment{{X1: 0, Y1: 1, X2: 2, Y2: 1, Type: Single}, {X1: 0, Y1: 0, X2: 2, Y2: 0, Type: Single}},
			want: []Segment{{X1: 0, Y1: 0, X2: 2, Y2: 0, Type: Single}, {X1: 0, Y1: 1, X2: 2, Y2: 1, Type: Single}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeSegments(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("MergeSegments() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseJoinsAreSymmetric(t *testing.T) {
	d := mustParse(t, sampleDiagram)
	for _, h := range d.Points() {
		switch p := d.Item(h).(type) {
		case *Node:
			for _, dir := range Directions {
				if p.Lines[dir] == None {
					if p.Joins[dir] != NoHandle {
						t.Errorf("%s joins %s without a line", d.Describe(h), dir)
					}
					continue
				}
				checkJoinBack(t, d, h, p.Joins[dir], dir)
			}
		case *LineEnd:
			checkJoinBack(t, d, h, p.Join, p.Dir)
		}
	}
}

func checkJoinBack(t *testing.T, d *Diagram, from, to Handle, dir Direction) {
	t.Helper()
	switch q := d.Item(to).(type) {
	case *Box:
	case *Node:
		if q.Joins[dir.Opposite()] != from {
			t.Errorf("%s joins %s going %s, which joins %d back", d.Describe(from), d.Describe(to), dir, q.Joins[dir.Opposite()])
		}
	case *LineEnd:
		if q.Dir != dir.Opposite() || q.Join != from {
			t.Errorf("%s joins %s going %s, which does not join back", d.Describe(from), d.Describe(to), dir)
		}
	default:
		t.Errorf("%s has no partner going %s", d.Describe(from), dir)
	}
}

func TestParseJoinFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"box exit going nowhere", rows("╔═╗", "║ ║", "╚╤╝")},
		{"lone line glyph", rows("a ─ b")},
		{"branch stub", rows("───", " ┬")},
		{"weight mismatch at a bend", rows("──╖", "  │")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(tt.text)
			if !errors.Is(err, ErrJoin) {
				t.Fatalf("Parse() error = %v, want ErrJoin", err)
			}
			if d != nil {
				t.Error("Parse() returned a partial diagram")
			}
		})
	}
}

func TestParseText(t *testing.T) {
	d := mustParse(t, rows(
		"╔══════════╗",
		"║ Hello    ║",
		"║  world   ║",
		"║          ║",
		"║ Again    ║",
		"╚══════════╝",
		"  note",
	))
	b := d.Item(d.Boxes()[0]).(*Box)
	if len(b.TextAreas) != 2 {
		t.Fatalf("got %d text areas, want 2", len(b.TextAreas))
	}
	first := b.TextAreas[0]
	want := []TextLine{{X: 2, Y: 1, Content: "Hello"}, {X: 3, Y: 2, Content: "world"}}
	if len(first.Lines) != len(want) {
		t.Fatalf("first area = %+v", first.Lines)
	}
	for i := range want {
		if first.Lines[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, first.Lines[i], want[i])
		}
	}
	if got := b.TextAreas[1].Text(); got != "Again" {
		t.Errorf("second area = %q, want %q", got, "Again")
	}
	if len(d.Labels) != 1 || d.Labels[0].Text() != "note" {
		t.Errorf("labels = %+v, want one \"note\"", d.Labels)
	}
}

func TestParseTextSkipsNestedBoxes(t *testing.T) {
	d := mustParse(t, rows(
		"╔═════════╗",
		"║ out ╔═╗ ║",
		"║     ║x║ ║",
		"║     ╚═╝ ║",
		"╚═════════╝",
	))
	boxes := d.Boxes()
	if len(boxes) != 2 {
		t.Fatalf("got %d boxes, want 2", len(boxes))
	}
	outer := d.Item(boxes[0]).(*Box)
	inner := d.Item(boxes[1]).(*Box)
	if len(outer.TextAreas) != 1 || outer.TextAreas[0].Text() != "out" {
		t.Errorf("outer text = %+v", outer.TextAreas)
	}
	if len(inner.TextAreas) != 1 || inner.TextAreas[0].Text() != "x" {
		t.Errorf("inner text = %+v", inner.TextAreas)
	}
}

func TestGroupTextLines(t *testing.T) {
	lines := []TextLine{
		{X: 0, Y: 0, Content: "abc"},
		{X: 10, Y: 0, Content: "far"},
		{X: 2, Y: 1, Content: "de"},
		{X: 11, Y: 2, Content: "gap"},
		{X: 3, Y: 2, Content: "f"},
	}
	areas := GroupTextLines(lines)
	if len(areas) != 3 {
		t.Fatalf("got %d areas, want 3: %+v", len(areas), areas)
	}
	if got := areas[0].Text(); got != "abc\nde\nf" {
		t.Errorf("first area = %q", got)
	}
	if got := areas[1].Text(); got != "far" {
		t.Errorf("second area = %q", got)
	}
	if got := areas[2].Text(); got != "gap" {
		t.Errorf("third area = %q", got)
	}
}
