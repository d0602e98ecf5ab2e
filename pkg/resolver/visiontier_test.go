package resolver

import (
	"testing"

	"github.com/screenpilot-dev/screenpilot/pkg/core"
	"github.com/screenpilot-dev/screenpilot/pkg/ocr"
	"github.com/screenpilot-dev/screenpilot/pkg/vision"
)

func TestVisionMatcher_ConfidenceGate(t *testing.T) {
	coord := &core.Point{X: 500, Y: 800}
	tests := []struct {
		name      string
		result    vision.Result
		wantMatch bool
	}{
		{"well above gate", vision.Result{Coord: coord, Confidence: 0.8}, true},
		{"just above gate", vision.Result{Coord: coord, Confidence: 0.41}, true},
		{"exactly at gate rejected", vision.Result{Coord: coord, Confidence: 0.4}, false},
		{"below gate", vision.Result{Coord: coord, Confidence: 0.3}, false},
		{"no coordinates rejected", vision.Result{Confidence: 0.9}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tapper := &fakeTapper{}
			m := &visionMatcher{
				vision: &fakeVision{available: true, result: tt.result},
				device: tapper,
			}

			target, ok := m.attempt(normalize("red car"))
			if ok != tt.wantMatch {
				t.Fatalf("attempt = %v, want %v", ok, tt.wantMatch)
			}
			if !tt.wantMatch {
				if len(tapper.taps) != 0 {
					t.Errorf("rejected result must not tap, got %v", tapper.taps)
				}
				return
			}
			if target.Tier != TierVision || target.Point != *coord {
				t.Errorf("got %+v, want vision tap at %v", target, *coord)
			}
		})
	}
}

func TestOCRMatcher_FuzzyFallback(t *testing.T) {
	tapper := &fakeTapper{}
	engine := &fakeOCR{available: true, fuzzy: []ocr.ScoredMatch{
		{Score: 0.85, Match: ocr.Match{
			Text: "Settings", Conf: 0.9,
			Bounds: core.Bounds{X: 100, Y: 400, Width: 200, Height: 50},
		}},
	}}
	m := &ocrMatcher{ocr: engine, screens: newScreens(), device: tapper}

	target, ok := m.attempt(normalize("tap setings"))
	if !ok {
		t.Fatal("expected fuzzy match")
	}
	if target.Tier != TierOCR || target.Label != "Settings" {
		t.Errorf("got %+v, want OCR match on Settings", target)
	}
	if engine.calls != 2 {
		t.Errorf("expected exact then fuzzy (2 calls), got %d", engine.calls)
	}
	if target.Point != (core.Point{X: 200, Y: 425}) {
		t.Errorf("got tap at %v, want match center (200, 425)", target.Point)
	}
}

func TestOCRMatcher_ScreenshotFailureIsMiss(t *testing.T) {
	tapper := &fakeTapper{}
	engine := &fakeOCR{available: true}
	screens := failingScreens()
	m := &ocrMatcher{ocr: engine, screens: screens, device: tapper}

	if _, ok := m.attempt(normalize("tap checkout")); ok {
		t.Error("screenshot failure must be a miss, not a match")
	}
	if engine.calls != 0 {
		t.Errorf("OCR must not run without a screenshot, got %d calls", engine.calls)
	}
}
