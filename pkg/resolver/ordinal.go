package resolver

import (
	"fmt"

	"github.com/screenpilot-dev/screenpilot/pkg/core"
	"github.com/screenpilot-dev/screenpilot/pkg/logger"
	"github.com/screenpilot-dev/screenpilot/pkg/uitree"
)

// ordinalFinder handles "Nth item of type T" queries. They bypass the
// general cascade: an ordinal needs an ordered collection, not a single best
// match. The tree's list detection goes first; the vision model gets the
// query re-phrased as an ordinal sentence if the tree misses.
type ordinalFinder struct {
	tree   TreeSource
	vision ElementFinder
	device Tapper
}

func (f *ordinalFinder) find(position int, itemType string) (*Target, error) {
	items, err := f.tree.DetectListItems(itemType)
	if err != nil {
		logger.Warn("ordinal: list detection failed: %v", err)
		items = nil
	}

	if elem := indexItems(items, position); elem != nil {
		center := elem.Center()
		if err := f.device.Tap(center.X, center.Y); err != nil {
			logger.Warn("ordinal: tap failed: %v", err)
		} else {
			logger.Info("ordinal #%d %s -> %q", position, itemType, elem.Label())
			return &Target{Point: center, Tier: TierOrdinal, Label: elem.Label()}, nil
		}
	}

	// Vision fallback with the ordinal spelled back out
	if f.vision != nil && f.vision.Available() {
		phrase := ordinalPhrase(position, itemType)
		logger.Debug("ordinal: falling back to vision for %q", phrase)
		result, err := f.vision.FindElement(phrase)
		if err == nil && result.Coord != nil && result.Confidence > visionConfidenceGate {
			if err := f.device.Tap(result.Coord.X, result.Coord.Y); err == nil {
				return &Target{Point: *result.Coord, Tier: TierVision, Label: result.Description}, nil
			}
		}
	}

	return nil, core.ErrElementNotFound.WithMessage(
		fmt.Sprintf("could not find #%d %s", position, itemType))
}

// indexItems resolves a 1-based position, or -1 for last, against the
// detected items. Out-of-range positions are a miss, not an error.
func indexItems(items []*uitree.Element, position int) *uitree.Element {
	if len(items) == 0 {
		return nil
	}
	idx := position
	if position > 0 {
		idx = position - 1
	} else {
		idx = len(items) + position // negative indexing; -1 is the tail
	}
	if idx < 0 || idx >= len(items) {
		return nil
	}
	return items[idx]
}
