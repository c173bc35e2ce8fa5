package sink

// Style selects the colour palette used by the SVG and PNG sinks.
type Style string

const (
	StyleSimple Style = "simple"
	StyleWood   Style = "wood"
)

// Styles lists the supported styles in display order.
var Styles = []Style{StyleSimple, StyleWood}

// Valid reports whether s is a supported style.
func (s Style) Valid() bool {
	return s == StyleSimple || s == StyleWood
}

// DefaultScale is the number of output pixels per door unit.
const DefaultScale = 4.0

// Option configures the SVG and PNG sinks.
type Option func(*renderer)

type renderer struct {
	style      Style
	scale      float64
	dimensions bool
}

// WithStyle selects a colour palette. Unknown styles fall back to simple.
func WithStyle(s Style) Option { return func(r *renderer) { r.style = s } }

// WithScale sets the output pixels per door unit. Non-positive values are ignored.
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithDimensions adds measurement annotations: door size, panel heights and
// the peephole's distance from the top.
func WithDimensions() Option { return func(r *renderer) { r.dimensions = true } }

func newRenderer(opts ...Option) renderer {
	r := renderer{style: StyleSimple, scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	if !r.style.Valid() {
		r.style = StyleSimple
	}
	return r
}

// palette holds hex colours shared by the SVG and PNG sinks.
type palette struct {
	background  string
	door        string
	doorStroke  string
	panel       string
	panelStroke string
	warn        string
	peephole    string
	danger      string
	dimension   string
}

var palettes = map[Style]palette{
	StyleSimple: {
		background:  "#ffffff",
		door:        "#f4f4f4",
		doorStroke:  "#333333",
		panel:       "#dddddd",
		panelStroke: "#555555",
		warn:        "#f2c14e",
		peephole:    "#222222",
		danger:      "#d64545",
		dimension:   "#1f6fb2",
	},
	StyleWood: {
		background:  "#fbf7f0",
		door:        "#b5835a",
		doorStroke:  "#5c3b1e",
		panel:       "#9c6b43",
		panelStroke: "#4a2f17",
		warn:        "#e8a33d",
		peephole:    "#1c1c1c",
		danger:      "#c0392b",
		dimension:   "#2d4f6c",
	},
}

func (r renderer) palette() palette { return palettes[r.style] }
