// Package diagram reads box-drawing diagrams into a geometric model, renders
// the model back to text, and plans structural moves over it.
//
// A diagram is a character grid in which single and double box-drawing glyphs
// encode lines on each of a cell's four sides. Parse recognizes boxes (closed
// rectangles with at least one double edge), straight line segments, the
// nodes where segments bend or branch, the loose ends of lines, and the text
// written inside boxes. Render is the inverse of Parse.
//
// Every item lives in the Diagram's arena and is addressed by a Handle, so
// joins between items survive edits. TryMove computes the edits needed to
// move one item a single cell while keeping every attachment intact:
//
//	d, err := diagram.Parse(text)
//	if err != nil {
//	    return err
//	}
//	edits, err := diagram.TryMove(d, d.ItemAt(x, y), diagram.Right, diagram.DefaultOptions())
//	if err != nil {
//	    return err // errors.Is(err, diagram.ErrUnsupported) etc.
//	}
//	d.Apply(edits)
//	fmt.Println(diagram.Render(d))
package diagram
