package ocr

import (
	"strings"
	"testing"
)

// sampleTSV mimics tesseract TSV output: header plus word rows.
// Columns: level page block par line word left top width height conf text
const sampleTSV = `level	page_num	block_num	par_num	line_num	word_num	left	top	width	height	conf	text
5	1	1	1	1	1	100	200	150	40	95	Subscribe
5	1	1	1	1	2	260	200	80	40	92	now
5	1	2	1	1	1	100	400	120	40	88	Settings
5	1	3	1	1	1	100	600	90	40	12	noise
5	1	4	1	1	1	100	800	90	40	91
`

func TestParseTSV(t *testing.T) {
	matches := parseTSV(sampleTSV)

	// 3 words above the confidence floor + 1 merged line ("Subscribe now")
	if len(matches) != 4 {
		t.Fatalf("expected 4 matches, got %d: %+v", len(matches), matches)
	}

	var merged *Match
	for i := range matches {
		if strings.Contains(matches[i].Text, " ") {
			merged = &matches[i]
		}
	}
	if merged == nil {
		t.Fatal("expected a merged line match")
	}
	if merged.Text != "Subscribe now" {
		t.Errorf("got merged text %q, want 'Subscribe now'", merged.Text)
	}
	if merged.Bounds.X != 100 || merged.Bounds.Width != 240 {
		t.Errorf("merged bounds wrong: %+v", merged.Bounds)
	}
	// Merged confidence is the weakest word
	if merged.Conf != 0.92 {
		t.Errorf("got merged conf %.2f, want 0.92", merged.Conf)
	}
}

func TestParseTSV_DropsNoise(t *testing.T) {
	matches := parseTSV(sampleTSV)
	for _, m := range matches {
		if m.Text == "noise" {
			t.Error("low-confidence word must be dropped")
		}
		if m.Text == "" {
			t.Error("empty text must be dropped")
		}
	}
}

func TestSearchMatches(t *testing.T) {
	matches := parseTSV(sampleTSV)

	tests := []struct {
		query string
		want  int
	}{
		{"subscribe", 2}, // word + merged line
		{"subscribe now", 1},
		{"settings", 1},
		{"missing", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := searchMatches(matches, tt.query)
			if len(got) != tt.want {
				t.Errorf("query %q: got %d matches, want %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestFuzzySearchMatches(t *testing.T) {
	matches := parseTSV(sampleTSV)

	// OCR misread: query "setings" should still hit "Settings"
	got := fuzzySearchMatches(matches, "setings", 0.7)
	if len(got) == 0 {
		t.Fatal("expected a fuzzy match for a near-miss query")
	}
	if got[0].Match.Text != "Settings" {
		t.Errorf("best fuzzy match is %q, want Settings", got[0].Match.Text)
	}
	if got[0].Score < 0.7 {
		t.Errorf("score %.2f below threshold", got[0].Score)
	}

	// A completely unrelated query stays below the threshold
	if got := fuzzySearchMatches(matches, "xyzzy", 0.7); len(got) != 0 {
		t.Errorf("expected no fuzzy matches, got %d", len(got))
	}
}

func TestMatch_Center(t *testing.T) {
	matches := parseTSV(sampleTSV)
	for _, m := range matches {
		if m.Text == "Settings" {
			c := m.Center()
			if c.X != 160 || c.Y != 420 {
				t.Errorf("got center %v, want (160, 420)", c)
			}
		}
	}
}
