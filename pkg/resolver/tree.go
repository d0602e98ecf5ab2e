package resolver

import (
	"strings"

	"github.com/screenpilot-dev/screenpilot/pkg/logger"
	"github.com/screenpilot-dev/screenpilot/pkg/uitree"
)

// Word-overlap acceptance floor: at least half the query's words must appear
// in the element, where the long-text and clickable bonuses count toward the
// floor and can push a borderline candidate over it.
const (
	overlapFloor   = 0.5
	longTextBonus  = 0.1 // favors content over chrome/toolbar labels
	longTextLength = 20
	clickableBonus = 0.05
)

// treeMatcher searches the live accessibility tree: two exact substring
// passes (text, then content description), then word-overlap scoring for
// partial, reordered, or truncated phrasings of long on-screen text.
type treeMatcher struct {
	tree   TreeSource
	device Tapper
}

func (m *treeMatcher) name() string { return "tree" }

func (m *treeMatcher) attempt(q normalized) (*Target, bool) {
	target := strings.TrimSpace(q.searchText)
	if target == "" {
		return nil, false
	}

	elements, err := m.tree.Capture(true)
	if err != nil {
		logger.Warn("tree tier: capture failed: %v", err)
		return nil, false
	}
	if len(elements) == 0 {
		logger.Warn("tree tier: UI tree is empty")
		return nil, false
	}

	// Pass 1: exact substring in text
	for _, elem := range elements {
		if elem.Text != "" && strings.Contains(strings.ToLower(elem.Text), target) {
			return m.tap(elem, elem.Text)
		}
	}

	// Pass 2: exact substring in content description
	for _, elem := range elements {
		if elem.ContentDesc != "" && strings.Contains(strings.ToLower(elem.ContentDesc), target) {
			return m.tap(elem, elem.ContentDesc)
		}
	}

	// Pass 3: word-overlap scoring
	// "how hungry" should match "How a Hungry Wolf Changed Rivers"
	best, bestScore := bestOverlap(elements, target)
	if best != nil && bestScore >= overlapFloor {
		logger.Info("tree tier overlap match %.0f%% for %q", bestScore*100, target)
		return m.tap(best, best.Label())
	}

	return nil, false
}

// bestOverlap returns the highest-scoring element for the query and its score.
func bestOverlap(elements []*uitree.Element, target string) (*uitree.Element, float64) {
	queryWords := fieldSet(target)
	if len(queryWords) == 0 {
		return nil, 0
	}

	var best *uitree.Element
	bestScore := 0.0

	for _, elem := range elements {
		score := overlapScore(elem, queryWords)
		if score > bestScore {
			bestScore = score
			best = elem
		}
	}
	return best, bestScore
}

// overlapScore computes the fraction of query words present in the element's
// combined text, plus bonuses. Zero overlap scores zero regardless of bonuses.
func overlapScore(elem *uitree.Element, queryWords map[string]bool) float64 {
	text := strings.ToLower(elem.Text)
	combined := text + " " + strings.ToLower(elem.ContentDesc)
	if strings.TrimSpace(combined) == "" {
		return 0
	}

	elemWords := fieldSet(combined)
	overlap := 0
	for w := range queryWords {
		if elemWords[w] {
			overlap++
		}
	}
	if overlap == 0 {
		return 0
	}

	score := float64(overlap) / float64(len(queryWords))
	if len(text) > longTextLength {
		score += longTextBonus
	}
	if elem.Clickable {
		score += clickableBonus
	}
	return score
}

func fieldSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

func (m *treeMatcher) tap(elem *uitree.Element, label string) (*Target, bool) {
	center := elem.Center()
	if err := m.device.Tap(center.X, center.Y); err != nil {
		logger.Warn("tree tier: tap failed: %v", err)
		return nil, false
	}
	return &Target{Point: center, Tier: TierTree, Label: label}, true
}
