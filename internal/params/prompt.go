package params

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/bethesim/internal/physics"
)

// Prompter asks for parameters one line at a time. It reads byte by byte so
// nothing past the answered line is consumed and in can be handed on.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Confirm asks a yes/no question; only "y" or "Y" count as yes.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s (y/n): ", question)
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

// Float asks for one value, keeping def on empty or malformed input.
func (p *Prompter) Float(label string, def float64) (float64, error) {
	fmt.Fprintf(p.out, "Enter value for %s (default %s): ", label, formatDefault(def))
	answer, err := p.readLine()
	if err != nil {
		return def, err
	}
	return parseOr(answer, def), nil
}

func (p *Prompter) Parameters(def physics.CorrectionParameters) (physics.CorrectionParameters, error) {
	out := def
	for _, f := range fields {
		ref := f.ref(&out)
		v, err := p.Float(f.label, *ref)
		if err != nil {
			return def, err
		}
		*ref = v
	}
	return out, nil
}

// readLine returns the trimmed next line. End of input reads as an empty
// answer.
func (p *Prompter) readLine() (string, error) {
	var (
		line strings.Builder
		b    [1]byte
	)
	for {
		n, err := p.in.Read(b[:])
		if n > 0 {
			if b[0] == '\n' {
				break
			}
			line.WriteByte(b[0])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
	}
	return strings.TrimSpace(line.String()), nil
}
