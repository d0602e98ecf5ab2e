package uitree

import (
	"fmt"
	"sort"
	"strings"
)

// containerClasses often match through the clickable boost alone and cause
// wrong taps when they carry no text of their own.
var containerClasses = []string{"Layout", "ViewGroup", "RecyclerView", "ScrollView"}

// Search ranks elements against a query across text, content description,
// and resource ID. Results are sorted best-first.
func Search(elements []*Element, query string) []*Element {
	queryLower := strings.ToLower(query)

	type scored struct {
		score int
		elem  *Element
	}
	var results []scored

	for _, elem := range elements {
		score := 0

		// Exact text match outranks everything
		if elem.Text != "" && strings.ToLower(elem.Text) == queryLower {
			score += 100
		} else if elem.Text != "" && containsIgnoreCase(elem.Text, queryLower) {
			score += 50
		}

		if elem.ContentDesc != "" && containsIgnoreCase(elem.ContentDesc, queryLower) {
			score += 30
		}
		if elem.ResourceID != "" && containsIgnoreCase(elem.ResourceID, queryLower) {
			score += 20
		}
		if elem.Clickable {
			score += 10
		}

		// Penalize bare containers below text-bearing elements
		if score > 0 && elem.Text == "" && elem.ContentDesc == "" {
			for _, c := range containerClasses {
				if strings.Contains(elem.ClassName, c) {
					score -= 15
					break
				}
			}
		}

		if score > 0 {
			results = append(results, scored{score, elem})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	ranked := make([]*Element, len(results))
	for i, r := range results {
		ranked[i] = r.elem
	}
	return ranked
}

// Search captures a fresh hierarchy and ranks its elements against the query.
// Always refreshes: the screen may have changed since the last capture.
func (a *Analyzer) Search(query string) ([]*Element, error) {
	elements, err := a.Capture(true)
	if err != nil {
		return nil, err
	}
	return Search(elements, query), nil
}

// List detection size limits. Repeating feed items sit between icon size and
// full screen; anything outside is chrome or a scroll container.
const (
	minItemSize   = 100
	maxItemWidth  = 900
	maxItemHeight = 1500
	sizeBucket    = 50
	minListItems  = 2
)

// DetectListItems finds repeating items (videos, posts, products) in the
// element list, ordered top-to-bottom then left-to-right. When enough elements
// mention itemType in their class, text, or description, detection is limited
// to those; otherwise it falls back to size grouping over everything.
func DetectListItems(elements []*Element, itemType string) []*Element {
	candidates := elements
	if itemType != "" {
		var typed []*Element
		for _, e := range elements {
			if containsIgnoreCase(e.ClassName, itemType) ||
				containsIgnoreCase(e.Text, itemType) ||
				containsIgnoreCase(e.ContentDesc, itemType) {
				typed = append(typed, e)
			}
		}
		if len(typed) >= minListItems {
			candidates = typed
		}
	}

	// Group elements by approximate size
	sizeGroups := make(map[[2]int][]*Element)
	for _, elem := range candidates {
		w, h := elem.Bounds.Width, elem.Bounds.Height
		if w < minItemSize || h < minItemSize {
			continue
		}
		if w > maxItemWidth || h > maxItemHeight {
			continue
		}
		key := [2]int{(w + sizeBucket/2) / sizeBucket * sizeBucket, (h + sizeBucket/2) / sizeBucket * sizeBucket}
		sizeGroups[key] = append(sizeGroups[key], elem)
	}

	// The largest group is likely the repeating items
	var largest []*Element
	for _, group := range sizeGroups {
		if len(group) > len(largest) {
			largest = group
		}
	}
	if len(largest) < minListItems {
		return nil
	}

	sort.SliceStable(largest, func(i, j int) bool {
		if largest[i].Bounds.Y != largest[j].Bounds.Y {
			return largest[i].Bounds.Y < largest[j].Bounds.Y
		}
		return largest[i].Bounds.X < largest[j].Bounds.X
	})
	return largest
}

// DetectListItems captures a fresh hierarchy and detects repeating items in it.
func (a *Analyzer) DetectListItems(itemType string) ([]*Element, error) {
	elements, err := a.Capture(true)
	if err != nil {
		return nil, err
	}
	return DetectListItems(elements, itemType), nil
}

// DescribeScreen summarizes the current capture: dominant package, element
// type counts, and the visible text items.
func (a *Analyzer) DescribeScreen() (string, error) {
	elements, err := a.Capture(false)
	if err != nil {
		return "", err
	}
	if len(elements) == 0 {
		return "Unable to analyze screen (UI tree empty)", nil
	}

	packageCounts := make(map[string]int)
	for _, e := range elements {
		if e.Package != "" {
			packageCounts[e.Package]++
		}
	}
	mainPackage := ""
	for pkg, n := range packageCounts {
		if n > packageCounts[mainPackage] || mainPackage == "" {
			mainPackage = pkg
		}
	}

	var buttons, textViews, images int
	var visibleTexts []string
	for _, e := range elements {
		switch {
		case strings.Contains(e.ClassName, "Button"):
			buttons++
		case strings.Contains(e.ClassName, "TextView"):
			textViews++
		case strings.Contains(e.ClassName, "Image"):
			images++
		}
		if len(e.Text) > 1 && e.Bounds.Width > 50 {
			visibleTexts = append(visibleTexts, e.Text)
		}
	}

	var b strings.Builder
	b.WriteString("Screen Analysis:\n")
	fmt.Fprintf(&b, "- App: %s\n", mainPackage)
	fmt.Fprintf(&b, "- Elements: %d buttons, %d text views, %d images\n", buttons, textViews, images)
	if len(visibleTexts) > 0 {
		fmt.Fprintf(&b, "- Visible text (%d items):\n", len(visibleTexts))
		for i, text := range visibleTexts {
			if i >= 10 {
				fmt.Fprintf(&b, "  ... and %d more\n", len(visibleTexts)-10)
				break
			}
			fmt.Fprintf(&b, "  %d. %s\n", i+1, text)
		}
	}
	return b.String(), nil
}
