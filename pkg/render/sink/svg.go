package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/doorpanels/pkg/door"
)

const fontFamily = "Helvetica, Arial, sans-serif"

// RenderSVG draws the door, its panels and the peephole as an SVG document.
// The viewBox is in door units; width and height are scaled to pixels.
func RenderSVG(res door.Result, opts ...Option) []byte {
	r := newRenderer(opts...)
	s := buildScene(res)
	pal := r.palette()

	w, h, off := s.canvas(r.dimensions)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		w, h, w*r.scale, h*r.scale)
	fmt.Fprintf(&buf, `  <rect class="background" width="100%%" height="100%%" fill="%s"/>`+"\n", pal.background)
	fmt.Fprintf(&buf, `  <g transform="translate(%.2f, %.2f)">`+"\n", off, off)

	fmt.Fprintf(&buf, `    <rect class="door" x="0" y="0" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="0.6"/>`+"\n",
		s.Door.W, s.Door.H, pal.door, pal.doorStroke)

	for _, p := range s.Panels {
		renderSVGPanel(&buf, p, pal)
	}
	if s.Peephole != nil {
		renderSVGPeephole(&buf, *s.Peephole, pal)
	}
	if r.dimensions {
		renderSVGDimensions(&buf, s, pal)
	}

	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderSVGPanel(buf *bytes.Buffer, p panelShape, pal palette) {
	if p.W == 0 || p.H == 0 {
		return
	}
	class, fill := "panel", pal.panel
	if p.Warn {
		class, fill = "panel conflict", pal.warn
	}
	fmt.Fprintf(buf, `    <rect id="panel-%d" class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="0.4"/>`+"\n",
		p.Index, class, p.X, p.Y, p.W, p.H, fill, pal.panelStroke)
}

func renderSVGPeephole(buf *bytes.Buffer, p peepholeShape, pal palette) {
	class, stroke := "peephole safe", pal.doorStroke
	if !p.Safe {
		class, stroke = "peephole conflict", pal.danger
	}
	fmt.Fprintf(buf, `    <circle class="%s" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="0.5"/>`+"\n",
		class, p.CX, p.CY, p.R, pal.peephole, stroke)
}

// renderSVGDimensions draws the door width above the door, the door height
// on the right, each panel height on the left and the peephole's distance
// from the top beside it.
func renderSVGDimensions(buf *bytes.Buffer, s scene, pal palette) {
	const tick, fontSize = 2.0, 3.5
	line := func(x1, y1, x2, y2 float64) {
		fmt.Fprintf(buf, `    <line class="dimension" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="0.25"/>`+"\n",
			x1, y1, x2, y2, pal.dimension)
	}
	text := func(x, y float64, anchor, label string) {
		fmt.Fprintf(buf, `    <text class="dimension" x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" text-anchor="%s" fill="%s">%s</text>`+"\n",
			x, y, fontFamily, fontSize, anchor, pal.dimension, label)
	}

	y := -dimensionMargin / 2
	line(0, y, s.Door.W, y)
	line(0, y-tick, 0, y+tick)
	line(s.Door.W, y-tick, s.Door.W, y+tick)
	text(s.Door.W/2, y-1, "middle", formatLength(s.Door.W))

	x := s.Door.W + dimensionMargin/2
	line(x, 0, x, s.Door.H)
	line(x-tick, 0, x+tick, 0)
	line(x-tick, s.Door.H, x+tick, s.Door.H)
	text(x+1, s.Door.H/2, "start", formatLength(s.Door.H))

	x = -dimensionMargin / 2
	for _, p := range s.Panels {
		line(x, p.Y, x, p.Y+p.H)
		line(x-tick, p.Y, x+tick, p.Y)
		line(x-tick, p.Y+p.H, x+tick, p.Y+p.H)
		text(x-1, p.Y+p.H/2, "end", formatLength(p.Height))
	}

	if p := s.Peephole; p != nil {
		px := p.CX + p.R + 2
		line(px, 0, px, p.CY)
		text(px+1, p.CY/2, "start", formatLength(p.FromTop))
	}
}

func formatLength(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
