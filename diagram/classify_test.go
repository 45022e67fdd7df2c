package diagram

import "testing"

func TestLineAt(t *testing.T) {
	tests := []struct {
		glyph rune
		want  [4]LineType // up, right, down, left
	}{
		{'─', [4]LineType{None, Single, None, Single}},
		{'│', [4]LineType{Single, None, Single, None}},
		{'┼', [4]LineType{Single, Single, Single, Single}},
		{'╬', [4]LineType{Double, Double, Double, Double}},
		{'╔', [4]LineType{None, Double, Double, None}},
		{'╟', [4]LineType{Double, Single, Double, None}},
		{'╤', [4]LineType{None, Double, Single, Double}},
		{'╛', [4]LineType{Single, None, None, Double}},
		{'a', [4]LineType{None, None, None, None}},
		{' ', [4]LineType{None, None, None, None}},
		{'+', [4]LineType{None, None, None, None}},
	}

	for _, tt := range tests {
		t.Run(string(tt.glyph), func(t *testing.T) {
			for _, d := range Directions {
				if got := LineAt(tt.glyph, d); got != tt.want[d] {
					t.Errorf("LineAt(%c, %s) = %s, want %s", tt.glyph, d, got, tt.want[d])
				}
			}
		})
	}
}

func TestPaletteIsClosedUnderRotation(t *testing.T) {
	bySides := map[[4]LineType]rune{}
	for _, r := range Palette {
		bySides[Sides(r)] = r
	}
	for _, r := range Palette {
		s := Sides(r)
		// Rotating clockwise puts what was on the left on top.
		rotated := [4]LineType{s[Left], s[Up], s[Right], s[Down]}
		if _, ok := bySides[rotated]; !ok {
			t.Errorf("%c rotated has no glyph", r)
		}
	}
}

func TestPaletteSidesAreConsistent(t *testing.T) {
	for _, r := range Palette {
		s := Sides(r)
		n := 0
		for _, lt := range s {
			if lt != None {
				n++
			}
		}
		if n < 2 {
			t.Errorf("%c has %d sides, want at least 2", r, n)
		}
		if s[Left] != None && s[Right] != None && s[Left] != s[Right] {
			t.Errorf("%c changes weight along its row", r)
		}
		if s[Up] != None && s[Down] != None && s[Up] != s[Down] {
			t.Errorf("%c changes weight along its column", r)
		}
	}
	if !IsLineGlyph('╬') || IsLineGlyph('x') {
		t.Error("IsLineGlyph misclassifies")
	}
}

func TestGridLineOutOfBounds(t *testing.T) {
	g := NewGrid("┼")
	for _, d := range Directions {
		if got := g.Line(-1, 0, d); got != None {
			t.Errorf("Line(-1,0,%s) = %s, want none", d, got)
		}
		if got := g.Line(0, 99, d); got != None {
			t.Errorf("Line(0,99,%s) = %s, want none", d, got)
		}
	}
	if got := g.Line(0, 0, Left); got != Single {
		t.Errorf("Line(0,0,left) = %s, want single", got)
	}
}

func TestNewGridPads(t *testing.T) {
	g := NewGrid("ab\r\nabcd\n╔")
	if g.Height() != 5 {
		t.Fatalf("height = %d, want 5", g.Height())
	}
	for y, row := range g {
		if len(row) != 4 {
			t.Errorf("row %d has width %d, want 4", y, len(row))
		}
	}
	if g.At(3, 0) != ' ' || g.At(0, 2) != '╔' {
		t.Errorf("unexpected grid contents %q", g.Lines())
	}
	if got := g.String(); got != "ab\nabcd\n╔" {
		t.Errorf("String() = %q", got)
	}
}
