package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/doorpanels/pkg/door"
)

// maxPNGSide caps each side of the raster so that a huge door or scale
// cannot allocate an unbounded image.
const maxPNGSide = 8192

// RenderPNG rasterises the same drawing as [RenderSVG].
func RenderPNG(res door.Result, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	s := buildScene(res)
	pal := r.palette()

	w, h, off := s.canvas(r.dimensions)
	scale := r.scale
	if side := math.Max(w, h) * scale; side > maxPNGSide {
		scale = maxPNGSide / math.Max(w, h)
	}
	pw := max(1, int(math.Round(w*scale)))
	ph := max(1, int(math.Round(h*scale)))

	dc := gg.NewContext(pw, ph)
	dc.SetHexColor(pal.background)
	dc.Clear()

	dc.Scale(scale, scale)
	dc.Translate(off, off)

	dc.DrawRectangle(0, 0, s.Door.W, s.Door.H)
	dc.SetHexColor(pal.door)
	dc.FillPreserve()
	dc.SetHexColor(pal.doorStroke)
	dc.SetLineWidth(0.6 * scale)
	dc.Stroke()

	for _, p := range s.Panels {
		if p.W == 0 || p.H == 0 {
			continue
		}
		fill := pal.panel
		if p.Warn {
			fill = pal.warn
		}
		dc.DrawRectangle(p.X, p.Y, p.W, p.H)
		dc.SetHexColor(fill)
		dc.FillPreserve()
		dc.SetHexColor(pal.panelStroke)
		dc.SetLineWidth(0.4 * scale)
		dc.Stroke()
	}

	if p := s.Peephole; p != nil {
		stroke := pal.doorStroke
		if !p.Safe {
			stroke = pal.danger
		}
		dc.DrawCircle(p.CX, p.CY, p.R)
		dc.SetHexColor(pal.peephole)
		dc.FillPreserve()
		dc.SetHexColor(stroke)
		dc.SetLineWidth(0.5 * scale)
		dc.Stroke()
	}

	if r.dimensions {
		drawPNGDimensions(dc, s, pal, scale)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawPNGDimensions mirrors renderSVGDimensions using gg's built-in bitmap
// font. Text is drawn in pixel space so it stays legible at any scale.
func drawPNGDimensions(dc *gg.Context, s scene, pal palette, scale float64) {
	dc.SetHexColor(pal.dimension)
	dc.SetLineWidth(0.25 * scale)

	label := func(x, y, ax float64, text string) {
		px, py := dc.TransformPoint(x, y)
		dc.Push()
		dc.Identity()
		dc.DrawStringAnchored(text, px, py, ax, 0.5)
		dc.Pop()
	}

	y := -dimensionMargin / 2
	dc.DrawLine(0, y, s.Door.W, y)
	dc.Stroke()
	label(s.Door.W/2, y-2, 0.5, formatLength(s.Door.W))

	x := s.Door.W + dimensionMargin/2
	dc.DrawLine(x, 0, x, s.Door.H)
	dc.Stroke()
	label(x+1, s.Door.H/2, 0, formatLength(s.Door.H))

	x = -dimensionMargin / 2
	for _, p := range s.Panels {
		dc.DrawLine(x, p.Y, x, p.Y+p.H)
		dc.Stroke()
		label(x-1, p.Y+p.H/2, 1, formatLength(p.Height))
	}

	if p := s.Peephole; p != nil {
		px := p.CX + p.R + 2
		dc.DrawLine(px, 0, px, p.CY)
		dc.Stroke()
		label(px+1, p.CY/2, 0, formatLength(p.FromTop))
	}
}
