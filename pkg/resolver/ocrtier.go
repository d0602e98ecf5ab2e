package resolver

import (
	"github.com/screenpilot-dev/screenpilot/pkg/core"
	"github.com/screenpilot-dev/screenpilot/pkg/logger"
)

// fuzzyThreshold is the minimum similarity for a fuzzy OCR hit.
const fuzzyThreshold = 0.7

// ocrMatcher searches recognized text on the cached screenshot: exact
// containment first, then fuzzy similarity.
type ocrMatcher struct {
	ocr     TextFinder
	screens ScreenSource
	device  Tapper
}

func (m *ocrMatcher) name() string { return "ocr" }

func (m *ocrMatcher) attempt(q normalized) (*Target, bool) {
	cap, err := m.screens.Get(false)
	if err != nil {
		logger.Warn("ocr tier: screenshot failed: %v", err)
		return nil, false
	}

	matches, err := m.ocr.FindText(cap.PNG, q.searchText)
	if err != nil {
		logger.Warn("ocr tier: text search failed: %v", err)
		return nil, false
	}
	if len(matches) > 0 {
		return m.tap(matches[0].Center().X, matches[0].Center().Y, matches[0].Text)
	}

	fuzzy, err := m.ocr.FindTextFuzzy(cap.PNG, q.searchText, fuzzyThreshold)
	if err != nil {
		logger.Warn("ocr tier: fuzzy search failed: %v", err)
		return nil, false
	}
	if len(fuzzy) > 0 {
		best := fuzzy[0]
		logger.Info("ocr tier fuzzy match %q score %.2f", best.Match.Text, best.Score)
		return m.tap(best.Match.Center().X, best.Match.Center().Y, best.Match.Text)
	}

	return nil, false
}

func (m *ocrMatcher) tap(x, y int, label string) (*Target, bool) {
	if err := m.device.Tap(x, y); err != nil {
		logger.Warn("ocr tier: tap failed: %v", err)
		return nil, false
	}
	return &Target{Point: core.Point{X: x, Y: y}, Tier: TierOCR, Label: label}, true
}
