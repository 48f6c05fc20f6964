package pipeline

import (
	"fmt"

	"github.com/jonathan/fastfolio/internal/rendering"
)

// Mode names one of the four generation requests
type Mode string

// Generation modes
const (
	ModePortfolio Mode = "portfolio"
	ModeAnalysis  Mode = "analysis"
	ModeATS       Mode = "ats"
	ModeLaTeX     Mode = "latex"
)

// ModeDefinition binds a mode to its endpoint, analysis flavor, render variant and download name
type ModeDefinition struct {
	Name        Mode
	Endpoint    string
	ATSFriendly bool
	Variant     rendering.Variant
	Filename    string
}

// ModeRegistry holds every mode definition
var ModeRegistry = map[Mode]ModeDefinition{
	ModePortfolio: {
		Name:     ModePortfolio,
		Endpoint: "generate-portfolio",
		Variant:  rendering.VariantStandard,
		Filename: "portfolio.pdf",
	},
	ModeAnalysis: {
		Name:     ModeAnalysis,
		Endpoint: "analyze-portfolio",
		Variant:  rendering.VariantAnalysis,
		Filename: "analysis.pdf",
	},
	ModeATS: {
		Name:        ModeATS,
		Endpoint:    "generate-ats-portfolio",
		ATSFriendly: true,
		Variant:     rendering.VariantATS,
		Filename:    "ats_portfolio.pdf",
	},
	ModeLaTeX: {
		Name:     ModeLaTeX,
		Endpoint: "generate-latex-portfolio",
		Variant:  rendering.VariantLaTeX,
		Filename: "latex_portfolio.pdf",
	},
}

// Modes lists modes in endpoint order
func Modes() []Mode {
	return []Mode{ModePortfolio, ModeAnalysis, ModeATS, ModeLaTeX}
}

// Lookup returns the definition for mode
func Lookup(mode Mode) (ModeDefinition, error) {
	def, ok := ModeRegistry[mode]
	if !ok {
		return ModeDefinition{}, &UnknownModeError{Mode: string(mode)}
	}
	return def, nil
}

// ParseMode validates a mode name from a flag or path
func ParseMode(name string) (Mode, error) {
	def, err := Lookup(Mode(name))
	if err != nil {
		return "", err
	}
	return def.Name, nil
}

// UnknownModeError is returned for a mode that has no definition
type UnknownModeError struct {
	Mode string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown generation mode %q (want one of portfolio, analysis, ats, latex)", e.Mode)
}
