package diagram

import "sort"

// MergeSegments joins collinear segments of the same weight that share at
// least one cell. Segments that merely sit next to each other stay apart;
// their facing cells do not connect. The result is sorted with horizontal
// segments first, then by row or column and start.
func MergeSegments(segs []Segment) []Segment {
	sorted := append([]Segment(nil), segs...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Horizontal() != b.Horizontal() {
			return a.Horizontal()
		}
		if a.Horizontal() {
			if a.Y1 != b.Y1 {
				return a.Y1 < b.Y1
			}
		} else if a.X1 != b.X1 {
			return a.X1 < b.X1
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.X1 != b.X1 {
			return a.X1 < b.X1
		}
		return a.Y1 < b.Y1
	})

	var out []Segment
	for _, s := range sorted {
		if n := len(out); n > 0 && mergeable(out[n-1], s) {
			last := &out[n-1]
			last.X2 = max(last.X2, s.X2)
			last.Y2 = max(last.Y2, s.Y2)
			continue
		}
		out = append(out, s)
	}
	return out
}

// mergeable assumes a sorts before b.
func mergeable(a, b Segment) bool {
	if a.Type != b.Type || a.Horizontal() != b.Horizontal() {
		return false
	}
	if a.Horizontal() {
		return a.Y1 == b.Y1 && b.X1 <= a.X2
	}
	return a.X1 == b.X1 && b.Y1 <= a.Y2
}
