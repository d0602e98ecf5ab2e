package resolver

import (
	"fmt"

	"github.com/screenpilot-dev/screenpilot/pkg/core"
	"github.com/screenpilot-dev/screenpilot/pkg/logger"
)

// Resolver orchestrates the tiers in strict cost order, short-circuiting on
// the first success. One resolution attempts each tier at most once; the tap
// is performed by whichever tier first passes its gate.
type Resolver struct {
	device  Tapper
	tree    TreeSource
	ocr     TextFinder
	vision  ElementFinder
	screens ScreenSource

	knowledge KnowledgeMap
	ordinal   *ordinalFinder
}

// Options carries the collaborators. OCR, Vision, and Screens may be nil;
// the corresponding tiers are skipped rather than attempted and failing.
type Options struct {
	Device    Tapper
	Tree      TreeSource
	OCR       TextFinder
	Vision    ElementFinder
	Screens   ScreenSource
	Knowledge KnowledgeMap // nil selects DefaultKnowledge
}

// New creates a Resolver. The knowledge map is treated as immutable from
// here on.
func New(opts Options) *Resolver {
	knowledge := opts.Knowledge
	if knowledge == nil {
		knowledge = DefaultKnowledge()
	}
	return &Resolver{
		device:    opts.Device,
		tree:      opts.Tree,
		ocr:       opts.OCR,
		vision:    opts.Vision,
		screens:   opts.Screens,
		knowledge: knowledge,
		ordinal: &ordinalFinder{
			tree:   opts.Tree,
			vision: opts.Vision,
			device: opts.Device,
		},
	}
}

// ResolveAndTap resolves the query to a screen coordinate and taps it.
// Returns the tapped target, or a not-found error carrying the query when
// every attempted tier missed.
func (r *Resolver) ResolveAndTap(query string) (*Target, error) {
	q := normalize(query)
	logger.Info("resolving %q (search text %q)", query, q.searchText)

	// Ordinal queries are structurally different and bypass the cascade
	if q.ordinal != nil {
		return r.ordinal.find(q.ordinal.position, q.ordinal.itemType)
	}

	// Purely visual queries skip the text tiers entirely
	if q.requiresVision {
		if r.vision == nil || !r.vision.Available() {
			return nil, core.ErrVisionUnavailable.WithMessage(
				fmt.Sprintf("query %q requires vision but the model is unavailable", query))
		}
		vm := &visionMatcher{vision: r.vision, device: r.device}
		if target, ok := vm.attempt(q); ok {
			return target, nil
		}
		return nil, notFound(query)
	}

	for _, m := range r.tiers() {
		if target, ok := m.attempt(q); ok {
			return target, nil
		}
		logger.Debug("%s tier missed for %q", m.name(), q.searchText)
	}

	return nil, notFound(query)
}

// tiers builds the attempt order, dropping tiers whose collaborator is
// unavailable.
func (r *Resolver) tiers() []matcher {
	ms := []matcher{
		&knowledgeMatcher{knowledge: r.knowledge, tree: r.tree, device: r.device},
		&treeMatcher{tree: r.tree, device: r.device},
	}
	if r.ocr != nil && r.ocr.Available() && r.screens != nil {
		ms = append(ms, &ocrMatcher{ocr: r.ocr, screens: r.screens, device: r.device})
	}
	if r.vision != nil && r.vision.Available() {
		ms = append(ms, &visionMatcher{vision: r.vision, device: r.device})
	}
	return ms
}

// ListVisibleText returns the visible text of the current screen, used by
// diagnostic and teaching flows.
func (r *Resolver) ListVisibleText() ([]string, error) {
	return r.tree.VisibleTexts()
}

func notFound(query string) error {
	return core.ErrElementNotFound.WithMessage(fmt.Sprintf("not found: %s", query))
}
