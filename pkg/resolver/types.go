// Package resolver turns a natural-language element description into a tap on
// the device, trying progressively more expensive strategies: static knowledge
// lookup, accessibility-tree search, optical text search, and finally a vision
// model.
package resolver

import (
	"github.com/screenpilot-dev/screenpilot/pkg/core"
	"github.com/screenpilot-dev/screenpilot/pkg/ocr"
	"github.com/screenpilot-dev/screenpilot/pkg/screenshot"
	"github.com/screenpilot-dev/screenpilot/pkg/uitree"
	"github.com/screenpilot-dev/screenpilot/pkg/vision"
)

// Tier identifies which resolution strategy produced a target.
type Tier int

const (
	TierKnowledge Tier = iota // static action-word knowledge map
	TierTree                  // accessibility-tree search
	TierOCR                   // optical text search
	TierVision                // vision model
	TierOrdinal               // list-position lookup
)

// String returns the string representation of Tier.
func (t Tier) String() string {
	switch t {
	case TierKnowledge:
		return "knowledge"
	case TierTree:
		return "tree"
	case TierOCR:
		return "ocr"
	case TierVision:
		return "vision"
	case TierOrdinal:
		return "ordinal"
	default:
		return "unknown"
	}
}

// Target is the cascade's final output. It is only produced after a tier's
// confidence gate passed and the tap was issued.
type Target struct {
	Point core.Point
	Tier  Tier
	Label string
}

// Tapper performs the tap side effect on the device.
type Tapper interface {
	Tap(x, y int) error
	ScreenSize() (int, int, error)
}

// TreeSource captures the accessibility hierarchy.
type TreeSource interface {
	Capture(force bool) ([]*uitree.Element, error)
	DetectListItems(itemType string) ([]*uitree.Element, error)
	VisibleTexts() ([]string, error)
}

// TextFinder is the optical-text collaborator.
type TextFinder interface {
	Available() bool
	FindText(png []byte, query string) ([]ocr.Match, error)
	FindTextFuzzy(png []byte, query string, threshold float64) ([]ocr.ScoredMatch, error)
}

// ElementFinder is the vision collaborator.
type ElementFinder interface {
	Available() bool
	FindElement(query string) (vision.Result, error)
}

// ScreenSource yields the shared screenshot for the optical-text tier.
type ScreenSource interface {
	Get(force bool) (*screenshot.Capture, error)
}

// matcher is one tier of the cascade. attempt returns the tapped target on
// success; misses and downgraded collaborator faults return false. Tiers
// never report a false success: every returned target passed the tier's gate.
type matcher interface {
	name() string
	attempt(q normalized) (*Target, bool)
}
