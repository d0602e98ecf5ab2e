package device

import "testing"

func TestScreenSizeRegex(t *testing.T) {
	tests := []struct {
		name   string
		output string
		w, h   string
	}{
		{
			name:   "physical size",
			output: "Physical size: 1080x2400\n",
			w:      "1080", h: "2400",
		},
		{
			name:   "override size",
			output: "Physical size: 1080x2400\nOverride size: 720x1600\n",
			w:      "1080", h: "2400",
		},
		{
			name:   "override only",
			output: "Override size: 720x1600\n",
			w:      "720", h: "1600",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := screenSizeRe.FindStringSubmatch(tt.output)
			if m == nil {
				t.Fatalf("no match in %q", tt.output)
			}
			if m[1] != tt.w || m[2] != tt.h {
				t.Errorf("got %sx%s, want %sx%s", m[1], m[2], tt.w, tt.h)
			}
		})
	}
}

func TestScreenSizeRegex_NoMatch(t *testing.T) {
	if m := screenSizeRe.FindStringSubmatch("error: device offline"); m != nil {
		t.Errorf("expected no match, got %v", m)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, expected int
	}{
		{-3, 0, 100, 0},
		{50, 0, 100, 50},
		{120, 0, 100, 100},
		{0, 0, 100, 0},
		{100, 0, 100, 100},
	}

	for _, tt := range tests {
		if got := clamp(tt.v, tt.lo, tt.hi); got != tt.expected {
			t.Errorf("clamp(%d, %d, %d): got %d, want %d", tt.v, tt.lo, tt.hi, got, tt.expected)
		}
	}
}
