package uitree

import (
	"testing"

	"github.com/screenpilot-dev/screenpilot/pkg/core"
)

func makeElem(text, desc, class string, clickable bool) *Element {
	return &Element{
		Text:        text,
		ContentDesc: desc,
		ClassName:   class,
		Clickable:   clickable,
		Bounds:      core.Bounds{X: 0, Y: 0, Width: 200, Height: 100},
	}
}

func TestSearch_Ranking(t *testing.T) {
	elements := []*Element{
		makeElem("Settings and privacy", "", "android.widget.TextView", false),
		makeElem("Settings", "", "android.widget.TextView", true),
		makeElem("", "Settings", "android.widget.ImageButton", true),
	}

	ranked := Search(elements, "settings")
	if len(ranked) != 3 {
		t.Fatalf("expected 3 results, got %d", len(ranked))
	}
	// Exact text match (100) + clickable (10) must outrank substring (50)
	if ranked[0].Text != "Settings" {
		t.Errorf("expected exact match first, got %q", ranked[0].Label())
	}
}

func TestSearch_ContainerPenalty(t *testing.T) {
	elements := []*Element{
		makeElem("", "", "android.widget.LinearLayout", true),
		makeElem("Share", "", "android.widget.Button", true),
	}

	ranked := Search(elements, "share")
	if len(ranked) != 1 {
		t.Fatalf("expected container to be excluded (no text overlap at all), got %d results", len(ranked))
	}
	if ranked[0].Text != "Share" {
		t.Errorf("expected Share button, got %q", ranked[0].Label())
	}
}

func TestSearch_NoMatch(t *testing.T) {
	elements := []*Element{
		makeElem("Home", "", "android.widget.TextView", false),
	}
	if ranked := Search(elements, "subscribe"); len(ranked) != 0 {
		t.Errorf("expected no results, got %d", len(ranked))
	}
}

func listElem(x, y, w, h int, text string) *Element {
	return &Element{
		Text:      text,
		ClassName: "android.view.ViewGroup",
		Bounds:    core.Bounds{X: x, Y: y, Width: w, Height: h},
	}
}

func TestDetectListItems(t *testing.T) {
	elements := []*Element{
		// Full-screen container: excluded by size cap
		listElem(0, 0, 1080, 1920, ""),
		// Three similar-size feed items, deliberately out of visual order
		listElem(0, 900, 800, 400, "Second video"),
		listElem(0, 200, 810, 405, "First video"),
		listElem(0, 1600, 805, 398, "Third video"),
		// Small icon: excluded by minimum size
		listElem(20, 20, 48, 48, ""),
	}

	items := DetectListItems(elements, "video")
	if len(items) != 3 {
		t.Fatalf("expected 3 list items, got %d", len(items))
	}
	if items[0].Text != "First video" || items[1].Text != "Second video" || items[2].Text != "Third video" {
		t.Errorf("items not in top-to-bottom order: %v, %v, %v",
			items[0].Text, items[1].Text, items[2].Text)
	}
}

func TestDetectListItems_TooFew(t *testing.T) {
	elements := []*Element{
		listElem(0, 200, 800, 400, "Only item"),
	}
	if items := DetectListItems(elements, "video"); items != nil {
		t.Errorf("expected nil for a single candidate, got %d items", len(items))
	}
}

func TestDetectListItems_TypeFilter(t *testing.T) {
	elements := []*Element{
		// Two videos and two unrelated banners of similar size
		listElem(0, 100, 800, 400, "Cooking video"),
		listElem(0, 600, 800, 400, "Travel video"),
		listElem(0, 1100, 800, 400, "Ad banner"),
		{ContentDesc: "video thumbnail", ClassName: "android.widget.ImageView",
			Bounds: core.Bounds{X: 0, Y: 1550, Width: 800, Height: 400}},
	}

	items := DetectListItems(elements, "video")
	if len(items) != 3 {
		t.Fatalf("expected 3 video items after type filter, got %d", len(items))
	}
	for _, item := range items {
		if !containsIgnoreCase(item.Text+item.ContentDesc, "video") {
			t.Errorf("non-video item leaked through filter: %v", item.Label())
		}
	}
}
