package params

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/san-kum/bethesim/internal/physics"
	"go.uber.org/zap"
)

// Source tells where resolved parameters came from.
type Source int

const (
	SourceArgs Source = iota
	SourceDefaults
	SourcePrompt
	SourceForm
)

func (s Source) String() string {
	switch s {
	case SourceArgs:
		return "args"
	case SourceDefaults:
		return "defaults"
	case SourcePrompt:
		return "prompt"
	case SourceForm:
		return "form"
	}
	return fmt.Sprintf("source(%d)", int(s))
}

// Resolver picks the parameter source for a run. Defaults holds the values
// used for any field that is not supplied.
type Resolver struct {
	Defaults physics.CorrectionParameters
	In       io.Reader
	Out      io.Writer
	// Interactive enables asking on In when fewer than five args are given.
	Interactive bool
	// TUI prefers the terminal form over line prompts when In is a terminal.
	TUI bool
	Log *zap.Logger
}

func (r *Resolver) Resolve(args []string) (physics.CorrectionParameters, Source, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	if p, ok := FromArgs(args, r.Defaults); ok {
		if len(args) > NumArgs {
			log.Warn("ignoring extra arguments", zap.Strings("args", args[NumArgs:]))
		}
		return p, SourceArgs, nil
	}
	if len(args) > 0 {
		log.Warn("incomplete parameter arguments", zap.Int("got", len(args)), zap.Int("want", NumArgs))
	}

	if !r.Interactive {
		return r.Defaults, SourceDefaults, nil
	}

	prompter := NewPrompter(r.In, r.Out)
	fmt.Fprintln(r.Out, "Delta correction parameters were not fully provided on the command line.")
	yes, err := prompter.Confirm("Would you like to input them via standard input?")
	if err != nil {
		return r.Defaults, SourceDefaults, err
	}
	if !yes {
		fmt.Fprintln(r.Out, "Using default delta correction parameters.")
		return r.Defaults, SourceDefaults, nil
	}

	if r.TUI {
		if isTerminal(r.In) {
			p, err := RunForm(r.In, r.Out, r.Defaults)
			return p, SourceForm, err
		}
		log.Warn("input is not a terminal, falling back to line prompts")
	}

	p, err := prompter.Parameters(r.Defaults)
	return p, SourcePrompt, err
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
