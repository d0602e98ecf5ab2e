package resolver

import (
	"strings"

	"github.com/screenpilot-dev/screenpilot/pkg/logger"
)

// KnowledgeMap maps canonical action words to the accessibility labels apps
// commonly use for them. Read-only after construction.
type KnowledgeMap map[string][]string

// DefaultKnowledge returns the built-in action-word map.
func DefaultKnowledge() KnowledgeMap {
	return KnowledgeMap{
		"send":          {"Send", "send message", "Send message"},
		"search":        {"Search", "search", "Search button"},
		"back":          {"Back", "Navigate up", "Go back"},
		"close":         {"Close", "Dismiss", "Cancel"},
		"more":          {"More options", "More", "Overflow"},
		"menu":          {"More options", "Menu", "Navigation"},
		"settings":      {"Settings", "Preferences"},
		"play":          {"Play", "Play video"},
		"pause":         {"Pause", "Pause video"},
		"like":          {"Like", "Like button", "Heart"},
		"share":         {"Share", "Share button"},
		"subscribe":     {"Subscribe", "Subscribe button", "SUBSCRIBE"},
		"unsubscribe":   {"Unsubscribe", "Unsubscribe button", "UNSUBSCRIBE"},
		"follow":        {"Follow", "FOLLOW"},
		"unfollow":      {"Unfollow", "Unfollow button", "UNFOLLOW"},
		"download":      {"Download", "Save"},
		"shutter":       {"Shutter", "Capture", "Take photo"},
		"switch camera": {"Switch camera", "Flip"},
		"flash":         {"Flash", "Flash toggle"},
		"add":           {"Add", "Create", "New", "Compose"},
		"delete":        {"Delete", "Remove", "Trash"},
		"edit":          {"Edit", "Modify"},
		"save":          {"Save", "Done"},
		"cancel":        {"Cancel", "Dismiss"},
		"refresh":       {"Refresh", "Reload"},
		"comment":       {"Comment", "Comments"},
		"profile":       {"Profile", "Account", "Avatar"},
		"home":          {"Home", "Home tab"},
		"notifications": {"Notifications", "Alerts"},
		"copy":          {"Copy", "Copy link", "Copy text"},
		"paste":         {"Paste"},
		"forward":       {"Forward"},
		"reply":         {"Reply"},
		"attach":        {"Attach", "Attachment", "Attach file"},
	}
}

// Merge folds extra synonyms into the map. Only called during construction;
// the resolver never mutates the map afterward.
func (k KnowledgeMap) Merge(extra map[string][]string) {
	for key, synonyms := range extra {
		key = strings.ToLower(key)
		k[key] = append(k[key], synonyms...)
	}
}

// lookup finds the synonym list for a query: exact key first, then substring
// containment in either direction (handles "open settings" vs "settings").
func (k KnowledgeMap) lookup(query string) []string {
	if synonyms, ok := k[query]; ok {
		return synonyms
	}
	for key, synonyms := range k {
		if strings.Contains(query, key) || strings.Contains(key, query) {
			return synonyms
		}
	}
	return nil
}

// knowledgeMatcher is the cheapest tier: a map lookup plus one tree scan.
// Matches are definitional, not probabilistic, so there is no score gate.
type knowledgeMatcher struct {
	knowledge KnowledgeMap
	tree      TreeSource
	device    Tapper
}

func (m *knowledgeMatcher) name() string { return "knowledge" }

func (m *knowledgeMatcher) attempt(q normalized) (*Target, bool) {
	synonyms := m.knowledge.lookup(q.searchText)
	if synonyms == nil {
		return nil, false
	}

	elements, err := m.tree.Capture(true)
	if err != nil {
		logger.Warn("knowledge tier: tree capture failed: %v", err)
		return nil, false
	}

	for _, elem := range elements {
		desc := strings.ToLower(elem.ContentDesc)
		if desc == "" {
			continue
		}
		for _, synonym := range synonyms {
			s := strings.ToLower(synonym)
			if !strings.Contains(desc, s) && !strings.Contains(s, desc) {
				continue
			}
			if !elem.Clickable && !elem.IsButton() {
				continue
			}
			center := elem.Center()
			if err := m.device.Tap(center.X, center.Y); err != nil {
				logger.Warn("knowledge tier: tap failed: %v", err)
				return nil, false
			}
			logger.Info("knowledge tier matched %q -> %q at %v", q.searchText, elem.ContentDesc, center)
			return &Target{Point: center, Tier: TierKnowledge, Label: elem.ContentDesc}, true
		}
	}
	return nil, false
}
