package main

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"editon/diagram"
)

var errNothingToExport = errors.New("nothing to export")

// loadDiagramFile reads and parses a diagram file.
func loadDiagramFile(filename string) (*diagram.Diagram, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	d, err := diagram.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return d, nil
}

// saveDiagramFile writes the rendered diagram as plain text.
func saveDiagramFile(filename string, d *diagram.Diagram) error {
	text := diagram.Render(d).String()
	if text != "" {
		text += "\n"
	}
	return os.WriteFile(filename, []byte(text), 0o644)
}

// exportPNG rasterises the rendered diagram. Line glyphs are drawn as strokes
// so joins are continuous at any cell size; other characters use Go Mono.
func exportPNG(filename string, d *diagram.Diagram, c *Config) error {
	lines := diagram.Render(d).Lines()
	cols := 0
	for _, line := range lines {
		cols = max(cols, utf8.RuneCountInString(line))
	}
	if cols == 0 {
		return errNothingToExport
	}

	const padding = 2
	cw, ch := float64(c.PNGCellWidth), float64(c.PNGCellHeight)
	dc := gg.NewContext(int(float64(cols+2*padding)*cw), int(float64(len(lines)+2*padding)*ch))
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    c.PNGFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))
	dc.SetLineWidth(1.0)

	for y, line := range lines {
		for x, r := range []rune(line) {
			px := (float64(x+padding) + 0.5) * cw
			py := (float64(y+padding) + 0.5) * ch
			switch {
			case diagram.IsLineGlyph(r):
				drawGlyphPNG(dc, diagram.Sides(r), px, py, cw, ch)
			case r != ' ':
				dc.DrawStringAnchored(string(r), px, py, 0.5, 0.35)
			}
		}
	}
	return dc.SavePNG(filename)
}

// drawGlyphPNG strokes each half line of a cell from its centre to the cell
// edge. Double lines are two strokes either side of the centre line.
func drawGlyphPNG(dc *gg.Context, sides [4]diagram.LineType, px, py, cw, ch float64) {
	const gap = 1.5
	for _, dir := range diagram.Directions {
		t := sides[dir]
		if t == diagram.None {
			continue
		}
		dx, dy := dir.Delta()
		ex, ey := px+float64(dx)*cw/2, py+float64(dy)*ch/2
		if t == diagram.Single {
			dc.DrawLine(px, py, ex, ey)
			dc.Stroke()
			continue
		}
		for _, off := range [2]float64{-gap, gap} {
			if dir.Horizontal() {
				dc.DrawLine(px, py+off, ex, ey+off)
			} else {
				dc.DrawLine(px+off, py, ex+off, ey)
			}
			dc.Stroke()
		}
	}
}
