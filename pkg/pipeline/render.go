package pipeline

import (
	"github.com/matzehuels/doorpanels/pkg/door"
	"github.com/matzehuels/doorpanels/pkg/errors"
	"github.com/matzehuels/doorpanels/pkg/render/sink"
)

// drawFunc produces one artifact from a layout.
type drawFunc func(res door.Result, opts Options) ([]byte, error)

var drawers = map[string]drawFunc{
	FormatSVG: func(res door.Result, opts Options) ([]byte, error) {
		return sink.RenderSVG(res, opts.sinkOptions()...), nil
	},
	FormatPNG: func(res door.Result, opts Options) ([]byte, error) {
		return sink.RenderPNG(res, opts.sinkOptions()...)
	},
	FormatJSON: func(res door.Result, opts Options) ([]byte, error) {
		return sink.RenderJSON(res, sink.WithJSONStyle(opts.Style), sink.WithJSONIndent())
	},
}

// Render draws res once per requested format.
func Render(res door.Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		draw, ok := drawers[format]
		if !ok {
			return nil, errors.Field(errors.ErrCodeUnsupported, "formats", "has no renderer for %q", format)
		}
		data, err := draw(res, opts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// sinkOptions translates the drawing options shared by SVG and PNG.
func (o *Options) sinkOptions() []sink.Option {
	opts := []sink.Option{sink.WithStyle(o.Style)}
	if o.Scale > 0 {
		opts = append(opts, sink.WithScale(o.Scale))
	}
	if o.Dimensions {
		opts = append(opts, sink.WithDimensions())
	}
	return opts
}
