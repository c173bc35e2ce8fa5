package pipeline

import (
	"github.com/matzehuels/doorpanels/pkg/door"
)

// ComputeLayout runs the engine on the input described by opts. It does not
// validate; callers decide whether raw values reach the engine.
func ComputeLayout(opts Options) door.Result {
	return door.ComputeLayout(opts.Input())
}

// Summary holds the headline figures of a layout, used by log lines and the
// preview server's response headers.
type Summary struct {
	Panels    int
	Fits      bool
	Placement door.Placement
	Safe      bool
	Error     float64 // ratio error in percent
}

// Summarize extracts the headline figures from res.
func Summarize(res door.Result) Summary {
	s := Summary{
		Panels: len(res.Panels.Positions),
		Fits:   res.Panels.Fits,
		Safe:   true,
		Error:  res.Metrics.RatioErrorPct,
	}
	if p := res.Peephole; p != nil {
		s.Placement = p.Placement
		s.Safe = p.Safe()
	}
	return s
}
