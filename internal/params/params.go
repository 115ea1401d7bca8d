// Package params resolves the density-effect correction parameters of a run
// from positional arguments, line prompts or a terminal form.
package params

import (
	"strconv"
	"strings"

	"github.com/san-kum/bethesim/internal/physics"
)

// field describes one parameter in command-line order.
type field struct {
	key   string
	label string
	ref   func(p *physics.CorrectionParameters) *float64
}

var fields = []field{
	{"a", "a", func(p *physics.CorrectionParameters) *float64 { return &p.A }},
	{"x0", "x0", func(p *physics.CorrectionParameters) *float64 { return &p.X0 }},
	{"x1", "x1", func(p *physics.CorrectionParameters) *float64 { return &p.X1 }},
	{"c_param", "C", func(p *physics.CorrectionParameters) *float64 { return &p.C }},
	{"m_param", "m", func(p *physics.CorrectionParameters) *float64 { return &p.M }},
}

// NumArgs is the number of positional arguments FromArgs consumes.
var NumArgs = len(fields)

// FromArgs parses a, x0, x1, c_param and m_param from the first five args.
// Any field that does not parse keeps its default. It reports false, and
// returns def, when fewer than five args are given.
func FromArgs(args []string, def physics.CorrectionParameters) (physics.CorrectionParameters, bool) {
	if len(args) < NumArgs {
		return def, false
	}

	p := def
	for i, f := range fields {
		ref := f.ref(&p)
		*ref = parseOr(args[i], *ref)
	}
	return p, true
}

func parseOr(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

func formatDefault(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
