package diagram

import (
	"errors"
	"reflect"
	"testing"
)

var boxWithLine = rows(
	"╔══╗",
	"║  ╟──",
	"╚══╝",
)

var tee = rows(
	"──┬──",
	"  │",
	"  └──",
)

var cross = rows(
	"  │",
	"──┼──",
	"  │",
)

// moveAndRender moves the item at (x, y) once per direction and returns the
// rendered result.
func moveAndRender(t *testing.T, text string, x, y int, opts Options, dirs ...Direction) (string, error) {
	t.Helper()
	d := mustParse(t, text)
	h := d.ItemAt(x, y)
	if h == NoHandle {
		t.Fatalf("no item at (%d,%d)", x, y)
	}
	for _, dir := range dirs {
		edits, err := TryMove(d, h, dir, opts)
		if err != nil {
			return "", err
		}
		if err := d.Apply(edits); err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
	}
	return Render(d).String(), nil
}

func TestTryMove(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		x, y  int
		dirs  []Direction
		tight bool // no spacing
		want  string
		err   error
	}{
		{
			name: "box drags its line",
			text: boxWithLine,
			x:    1, y: 0,
			dirs: []Direction{Right},
			want: rows(" ╔══╗", " ║  ╟─", " ╚══╝"),
		},
		{
			name: "line would collapse",
			text: boxWithLine,
			x:    1, y: 0,
			dirs: []Direction{Right, Right},
			err:  ErrUnsupported,
		},
		{
			name: "box off the left edge",
			text: boxWithLine,
			x:    0, y: 0,
			dirs: []Direction{Left},
			err:  ErrUnsupported,
		},
		{
			name: "box down and back up",
			text: boxWithLine,
			x:    1, y: 0,
			dirs: []Direction{Down, Up},
			want: boxWithLine,
		},
		{
			name: "box down shifts the line",
			text: boxWithLine,
			x:    1, y: 0,
			dirs: []Direction{Down},
			want: rows("", "╔══╗", "║  ╟──", "╚══╝"),
		},
		{
			name: "line end onto a corner",
			text: boxWithLine,
			x:    5, y: 1,
			dirs: []Direction{Up},
			err:  ErrUnsupported,
		},
		{
			name: "line across its axis",
			text: boxWithLine,
			x:    4, y: 1,
			dirs: []Direction{Up},
			err:  ErrWrongAxis,
		},
		{
			name: "line along its axis takes the box",
			text: boxWithLine,
			x:    4, y: 1,
			dirs: []Direction{Left},
			err:  ErrUnsupported,
		},
		{
			name: "bend stretches right",
			text: rows("──┐", "  │", "  │"),
			x:    2, y: 0,
			dirs: []Direction{Right},
			want: rows("───┐", "   │", "   │"),
		},
		{
			name: "bend shrinks left",
			text: rows("──┐", "  │", "  │"),
			x:    2, y: 0,
			dirs: []Direction{Left},
			want: rows("─┐", " │", " │"),
		},
		{
			name: "bend shrinks to nothing",
			text: rows("──┐", "  │", "  │"),
			x:    2, y: 0,
			dirs: []Direction{Left, Left},
			err:  ErrUnsupported,
		},
		{
			name: "tee slides left along its line",
			text: tee,
			x:    2, y: 0,
			dirs: []Direction{Left},
			want: rows("─┬───", " │", " └───"),
		},
		{
			name: "tee slides right along its line",
			text: tee,
			x:    2, y: 0,
			dirs: []Direction{Right},
			want: rows("───┬─", "   │", "   └─"),
		},
		{
			name: "tee left and back",
			text: tee,
			x:    2, y: 0,
			dirs: []Direction{Left, Right},
			want: tee,
		},
		{
			name: "tee right and back",
			text: tee,
			x:    2, y: 0,
			dirs: []Direction{Right, Left},
			want: tee,
		},
		{
			name: "tail end right and back",
			text: tee,
			x:    0, y: 0,
			dirs: []Direction{Right, Left},
			want: tee,
		},
		{
			name: "cross slides left",
			text: cross,
			x:    2, y: 1,
			dirs: []Direction{Left},
			want: rows(" │", "─┼───", " │"),
		},
		{
			name: "cross right and back",
			text: cross,
			x:    2, y: 1,
			dirs: []Direction{Right, Left},
			want: cross,
		},
		{
			name: "line end down drags the bend",
			text: rows("──┐", "  │", "  │"),
			x:    0, y: 0,
			dirs: []Direction{Down},
			want: rows("", "──┐", "  │"),
		},
		{
			name: "line end down and back up",
			text: rows("──┐", "  │", "  │"),
			x:    0, y: 0,
			dirs: []Direction{Down, Up},
			want: rows("──┐", "  │", "  │"),
		},
		{
			name: "box pushes its neighbour",
			text: rows("╔═╗ ╔═╗", "╚═╝ ╚═╝"),
			x:    0, y: 0,
			dirs: []Direction{Right},
			want: rows(" ╔═╗ ╔═╗", " ╚═╝ ╚═╝"),
		},
		{
			name: "neighbour far enough away",
			text: rows("╔═╗  ╔═╗", "╚═╝  ╚═╝"),
			x:    0, y: 0,
			dirs: []Direction{Right},
			want: rows(" ╔═╗ ╔═╗", " ╚═╝ ╚═╝"),
		},
		{
			name:  "no spacing lets boxes touch",
			text:  rows("╔═╗ ╔═╗", "╚═╝ ╚═╝"),
			x:     0, y: 0,
			dirs:  []Direction{Right},
			tight: true,
			want:  rows(" ╔═╗╔═╗", " ╚═╝╚═╝"),
		},
		{
			name: "text moves with its box",
			text: rows("╔════╗", "║ hi ║", "╚════╝"),
			x:    0, y: 0,
			dirs: []Direction{Down},
			want: rows("", "╔════╗", "║ hi ║", "╚════╝"),
		},
		{
			name: "nested box rides along",
			text: rows(
				"╔═════╗",
				"║ ╔═╗ ║",
				"║ ╚═╝ ║",
				"╚═════╝",
			),
			x: 0, y: 0,
			dirs: []Direction{Right},
			want: rows(
				" ╔═════╗",
				" ║ ╔═╗ ║",
				" ║ ╚═╝ ║",
				" ╚═════╝",
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.tight {
				opts = Options{}
			}
			got, err := moveAndRender(t, tt.text, tt.x, tt.y, opts, tt.dirs...)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("error = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestTryMoveEdits(t *testing.T) {
	d := mustParse(t, boxWithLine)
	box := d.Boxes()[0]
	seg := d.Segments()[0]

	edits, err := TryMove(d, box, Right, DefaultOptions())
	if err != nil {
		t.Fatalf("TryMove() error: %v", err)
	}
	want := []Edit{
		{Kind: EditMove, Item: box, Dir: Right},
		{Kind: EditAdjust, Item: seg, End: Left, Dir: Right},
	}
	if !reflect.DeepEqual(edits, want) {
		t.Errorf("edits = %v, want %v", edits, want)
	}
}

func TestTryMoveKeepsTails(t *testing.T) {
	d := mustParse(t, tee)
	node := d.PointAt(2, 0)
	top := d.ItemAt(1, 0)
	tails := []Handle{top, d.PointAt(0, 0), d.PointAt(4, 0)}

	for _, dir := range []Direction{Left, Right} {
		edits, err := TryMove(d, node, dir, DefaultOptions())
		if err != nil {
			t.Fatalf("TryMove(%s) error: %v", dir, err)
		}
		for _, e := range edits {
			for _, h := range tails {
				if e.Item == h {
					t.Errorf("TryMove(%s) edits %s: %v", dir, d.Describe(h), e)
				}
			}
		}
	}
}

func TestTryMoveLeavesDiagramAlone(t *testing.T) {
	d := mustParse(t, boxWithLine)
	before := d.Clone()
	box := d.Boxes()[0]

	if _, err := TryMove(d, box, Right, DefaultOptions()); err != nil {
		t.Fatalf("TryMove() error: %v", err)
	}
	if _, err := TryMove(d, box, Left, DefaultOptions()); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("TryMove(left) error = %v, want ErrUnsupported", err)
	}
	if !reflect.DeepEqual(d, before) {
		t.Error("TryMove modified the diagram")
	}
}

func TestPlanConflict(t *testing.T) {
	d := mustParse(t, boxWithLine)
	p := NewPlan(d, DefaultOptions())
	if err := p.Move(d.Boxes()[0], Right); err != nil {
		t.Fatalf("Move(box) error: %v", err)
	}
	if err := p.Move(d.PointAt(5, 1), Up); !errors.Is(err, ErrConflict) {
		t.Errorf("Move(end) error = %v, want ErrConflict", err)
	}
}

func TestPlanAdjust(t *testing.T) {
	d := mustParse(t, boxWithLine)
	seg := d.Segments()[0]

	p := NewPlan(d, DefaultOptions())
	if err := p.Adjust(seg, Up, Up); !errors.Is(err, ErrWrongAxis) {
		t.Errorf("Adjust(up end) error = %v, want ErrWrongAxis", err)
	}
	if err := p.Adjust(d.Boxes()[0], Right, Right); !errors.Is(err, ErrNoItem) {
		t.Errorf("Adjust(box) error = %v, want ErrNoItem", err)
	}

	p = NewPlan(d, DefaultOptions())
	if err := p.Adjust(seg, Right, Right); err != nil {
		t.Fatalf("Adjust() error: %v", err)
	}
	edits, err := p.Edits()
	if err != nil {
		t.Fatalf("Edits() error: %v", err)
	}
	if err := d.Apply(edits); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	want := rows("╔══╗", "║  ╟───", "╚══╝")
	if got := Render(d).String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTryMoveBuiltDiagram(t *testing.T) {
	// A 3x2 rectangle of single lines does not parse as a box, but one built
	// directly still moves like any other.
	d := &Diagram{}
	box := d.add(&Box{X: 0, Y: 0, Width: 3, Height: 2, Edges: [4]LineType{Single, Single, Single, Single}})
	seg := d.add(&Segment{X1: 3, Y1: 1, X2: 5, Y2: 1, Type: Single})
	d.add(&LineEnd{X: 5, Y: 1, Dir: Left, Type: Single, Join: box})

	if got, want := Render(d).String(), rows("┌──┐", "│  ├──", "└──┘"); got != want {
		t.Fatalf("Render() =\n%s\nwant:\n%s", got, want)
	}
	edits, err := TryMove(d, box, Right, DefaultOptions())
	if err != nil {
		t.Fatalf("TryMove() error: %v", err)
	}
	if len(edits) != 2 || edits[1] != (Edit{Kind: EditAdjust, Item: seg, End: Left, Dir: Right}) {
		t.Errorf("edits = %v", edits)
	}
	if err := d.Apply(edits); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if got, want := Render(d).String(), rows(" ┌──┐", " │  ├─", " └──┘"); got != want {
		t.Errorf("Render() =\n%s\nwant:\n%s", got, want)
	}
}

func TestTryMoveErrors(t *testing.T) {
	d := mustParse(t, boxWithLine)
	if _, err := TryMove(d, NoHandle, Up, DefaultOptions()); !errors.Is(err, ErrNoItem) {
		t.Errorf("TryMove(NoHandle) error = %v, want ErrNoItem", err)
	}
	if err := d.Apply([]Edit{{Kind: EditMove, Item: 42}}); !errors.Is(err, ErrNoItem) {
		t.Errorf("Apply(unknown) error = %v, want ErrNoItem", err)
	}
	if err := d.Apply([]Edit{{Kind: EditAdjust, Item: d.Boxes()[0], End: Left, Dir: Left}}); !errors.Is(err, ErrWrongAxis) {
		t.Errorf("Apply(adjust box) error = %v, want ErrWrongAxis", err)
	}
}
