package resolver

import "testing"

func TestCleanSearchQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"action verb and noise", "click on how a hungry video", "how hungry"},
		{"verb determiner noun", "tap the subscribe button", "subscribe"},
		{"plain content", "checkout", "checkout"},
		{"all strip words fall back to verb strip", "tap the video", "the video"},
		{"mixed case is pre-lowered by normalize", "settings", "settings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanSearchQuery(tt.query); got != tt.want {
				t.Errorf("cleanSearchQuery(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestCleanSearchQueryNeverEmpty(t *testing.T) {
	// Every word is strippable and a verb: the raw query must come back.
	if got := cleanSearchQuery("click tap press"); got == "" {
		t.Error("cleaned query must never be empty")
	}
}

func TestNeedsVision(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"red car", true},
		{"the blue button", true},
		{"photo of a sunset", true},
		{"picture of mountains", true},
		{"tap the subscribe button", false},
		{"settings", false},
		{"person in the list", true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := needsVision(tt.query); got != tt.want {
				t.Errorf("needsVision(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestDetectOrdinal(t *testing.T) {
	tests := []struct {
		query    string
		position int
		itemType string
	}{
		{"the first post", 1, "post"},
		{"second video", 2, "video"},
		{"the third result", 3, "result"},
		{"4th item", 4, "item"},
		{"the 5th photo", 5, "photo"},
		{"the last video", -1, "video"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := detectOrdinal(tt.query)
			if got == nil {
				t.Fatalf("detectOrdinal(%q) = nil", tt.query)
			}
			if got.position != tt.position || got.itemType != tt.itemType {
				t.Errorf("got (#%d %q), want (#%d %q)",
					got.position, got.itemType, tt.position, tt.itemType)
			}
		})
	}
}

func TestDetectOrdinalNegatives(t *testing.T) {
	for _, query := range []string{
		"subscribe button",
		"the settings",    // ordinal word missing
		"first",           // item type missing
		"click the video", // leading word is not an ordinal
	} {
		t.Run(query, func(t *testing.T) {
			if got := detectOrdinal(query); got != nil {
				t.Errorf("detectOrdinal(%q) = %+v, want nil", query, got)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	q := normalize("  Click The SECOND Video  ")
	if q.raw != "click the second video" {
		t.Errorf("raw = %q", q.raw)
	}
	if q.ordinal != nil {
		t.Error("a verb-prefixed query is not ordinal")
	}

	q = normalize("The Second Video")
	if q.ordinal == nil || q.ordinal.position != 2 || q.ordinal.itemType != "video" {
		t.Errorf("ordinal = %+v, want #2 video", q.ordinal)
	}
}

func TestOrdinalPhrase(t *testing.T) {
	tests := []struct {
		position int
		itemType string
		want     string
	}{
		{1, "post", "the first post"},
		{3, "video", "the third video"},
		{-1, "item", "the last item"},
		{7, "row", "the 7th row"},
	}

	for _, tt := range tests {
		if got := ordinalPhrase(tt.position, tt.itemType); got != tt.want {
			t.Errorf("ordinalPhrase(%d, %q) = %q, want %q",
				tt.position, tt.itemType, got, tt.want)
		}
	}
}
