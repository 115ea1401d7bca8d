package physics

import (
	"fmt"
	"strings"
)

// Variant selects which correction terms enter the Bethe-Bloch bracket.
type Variant int

const (
	NoCorrection Variant = iota
	DensityCorrection
	ShellCorrection
	AllCorrections
)

// Variants lists every variant in sweep order.
func Variants() []Variant {
	return []Variant{NoCorrection, DensityCorrection, ShellCorrection, AllCorrections}
}

func (v Variant) String() string {
	switch v {
	case NoCorrection:
		return "no_corrections"
	case DensityCorrection:
		return "density_corrections"
	case ShellCorrection:
		return "shell_corrections"
	case AllCorrections:
		return "all_corrections"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// Caption is the legend label used by plot sinks.
func (v Variant) Caption() string {
	switch v {
	case NoCorrection:
		return "Protons in water (Bethe-Bloch)"
	case DensityCorrection:
		return "Protons in water (Bethe-Bloch) density correction"
	case ShellCorrection:
		return "Protons in water (Bethe-Bloch) shell correction"
	case AllCorrections:
		return "Protons in water (Bethe-Bloch) density and shell corrections"
	}
	return v.String()
}

// Title names the plot and its image file.
func (v Variant) Title() string {
	switch v {
	case NoCorrection:
		return "Stopping power vs energy without corrections"
	case DensityCorrection:
		return "Stopping power vs energy with density correction"
	case ShellCorrection:
		return "Stopping power vs energy with shell correction"
	case AllCorrections:
		return "Stopping power vs energy with density and shell corrections"
	}
	return v.String()
}

func (v Variant) hasDensity() bool {
	return v == DensityCorrection || v == AllCorrections
}

func (v Variant) hasShell() bool {
	return v == ShellCorrection || v == AllCorrections
}

// ParseVariant accepts the slug returned by String, its short form
// ("none", "density", "shell", "all") and "layer" as an alias for shell.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "no_corrections", "none", "no":
		return NoCorrection, nil
	case "density_corrections", "density":
		return DensityCorrection, nil
	case "shell_corrections", "shell", "layer_corrections", "layer":
		return ShellCorrection, nil
	case "all_corrections", "all":
		return AllCorrections, nil
	}
	return 0, fmt.Errorf("unknown variant: %s", s)
}
