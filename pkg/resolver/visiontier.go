package resolver

import (
	"github.com/screenpilot-dev/screenpilot/pkg/logger"
)

// visionConfidenceGate is the minimum model confidence for a vision tap.
// Results at or below the gate are rejected.
const visionConfidenceGate = 0.4

// visionMatcher asks the vision model to localize the element. It receives
// the raw query, not the cleaned one: visual words the normalizer strips for
// text search ("thumbnail", "picture") are exactly what the model needs.
type visionMatcher struct {
	vision ElementFinder
	device Tapper
}

func (m *visionMatcher) name() string { return "vision" }

func (m *visionMatcher) attempt(q normalized) (*Target, bool) {
	result, err := m.vision.FindElement(q.raw)
	if err != nil {
		logger.Warn("vision tier: %v", err)
		return nil, false
	}

	if result.Coord == nil || result.Confidence <= visionConfidenceGate {
		logger.Debug("vision tier below gate for %q: conf %.2f", q.raw, result.Confidence)
		return nil, false
	}

	if err := m.device.Tap(result.Coord.X, result.Coord.Y); err != nil {
		logger.Warn("vision tier: tap failed: %v", err)
		return nil, false
	}
	logger.Info("vision tier matched %q at %v (confidence %.0f%%)",
		q.raw, *result.Coord, result.Confidence*100)
	return &Target{Point: *result.Coord, Tier: TierVision, Label: result.Description}, true
}
