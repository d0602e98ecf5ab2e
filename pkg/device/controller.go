// Package device provides input and screen actions on an Android device via ADB.
package device

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"

	"github.com/screenpilot-dev/screenpilot/pkg/adb"
	"github.com/screenpilot-dev/screenpilot/pkg/core"
)

var screenSizeRe = regexp.MustCompile(`(?:Physical|Override) size:\s*(\d+)x(\d+)`)

// TapJitter is the maximum random offset applied to tap coordinates.
// Small randomization avoids pixel-identical taps being swallowed by some apps.
const TapJitter = 5

// Controller issues input commands and captures the screen.
type Controller struct {
	adb *adb.Client

	mu     sync.Mutex
	width  int
	height int
}

// New creates a Controller on the given ADB client.
func New(client *adb.Client) *Controller {
	return &Controller{adb: client}
}

// ScreenSize returns the device screen dimensions in pixels, cached after
// the first successful read.
func (c *Controller) ScreenSize() (int, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.width > 0 && c.height > 0 {
		return c.width, c.height, nil
	}

	out, err := c.adb.Shell("wm size")
	if err != nil {
		return 0, 0, core.ErrDeviceCommand.WithCause(err)
	}
	m := screenSizeRe.FindStringSubmatch(out)
	if m == nil {
		return 0, 0, fmt.Errorf("could not parse screen size from: %s", strings.TrimSpace(out))
	}

	fmt.Sscanf(m[1], "%d", &c.width)
	fmt.Sscanf(m[2], "%d", &c.height)
	return c.width, c.height, nil
}

// InvalidateScreenSize drops the cached dimensions (e.g. after rotation).
func (c *Controller) InvalidateScreenSize() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = 0, 0
}

// Tap taps at the coordinates with a small random jitter, clamped to screen.
func (c *Controller) Tap(x, y int) error {
	jx := x + rand.Intn(2*TapJitter+1) - TapJitter
	jy := y + rand.Intn(2*TapJitter+1) - TapJitter
	if w, h, err := c.ScreenSize(); err == nil {
		jx = clamp(jx, 0, w)
		jy = clamp(jy, 0, h)
	}
	return c.TapExact(jx, jy)
}

// TapExact taps at the exact coordinates.
func (c *Controller) TapExact(x, y int) error {
	_, err := c.adb.Shell(fmt.Sprintf("input tap %d %d", x, y))
	if err != nil {
		return core.ErrDeviceCommand.WithCause(err)
	}
	return nil
}

// LongPress presses at the coordinates for the given duration in milliseconds.
func (c *Controller) LongPress(x, y, durationMs int) error {
	_, err := c.adb.Shell(fmt.Sprintf("input swipe %d %d %d %d %d", x, y, x, y, durationMs))
	if err != nil {
		return core.ErrDeviceCommand.WithCause(err)
	}
	return nil
}

// Back presses the back key.
func (c *Controller) Back() error {
	return c.keyevent("KEYCODE_BACK")
}

// Home presses the home key.
func (c *Controller) Home() error {
	return c.keyevent("KEYCODE_HOME")
}

// Wake wakes the screen.
func (c *Controller) Wake() error {
	if err := c.keyevent("KEYCODE_WAKEUP"); err != nil {
		return err
	}
	return c.keyevent("KEYCODE_MENU")
}

func (c *Controller) keyevent(code string) error {
	_, err := c.adb.Shell("input keyevent " + code)
	if err != nil {
		return core.ErrDeviceCommand.WithCause(err)
	}
	return nil
}

// ScrollOnce performs one swipe in the given direction ("UP", "DOWN", "LEFT", "RIGHT").
// Direction names the content movement: DOWN reveals content further down the page.
func (c *Controller) ScrollOnce(direction string) error {
	w, h, err := c.ScreenSize()
	if err != nil {
		return err
	}

	cx, cy := w/2, h/2
	var x1, y1, x2, y2 int
	switch strings.ToUpper(direction) {
	case "DOWN":
		x1, y1, x2, y2 = cx, h*2/3, cx, h/3
	case "UP":
		x1, y1, x2, y2 = cx, h/3, cx, h*2/3
	case "LEFT":
		x1, y1, x2, y2 = w*2/3, cy, w/3, cy
	case "RIGHT":
		x1, y1, x2, y2 = w/3, cy, w*2/3, cy
	default:
		return fmt.Errorf("unknown scroll direction %q", direction)
	}

	_, err = c.adb.Shell(fmt.Sprintf("input swipe %d %d %d %d 300", x1, y1, x2, y2))
	if err != nil {
		return core.ErrDeviceCommand.WithCause(err)
	}
	return nil
}

// shellEscaped are characters that must be escaped in `input text` arguments.
const shellEscaped = `\"'` + "`" + `()&|;<>$!~{}[]*?#`

// TypeText types text into the focused field. Spaces become %s per the
// input command's convention.
func (c *Controller) TypeText(text string) error {
	escaped := strings.ReplaceAll(text, " ", "%s")
	for _, ch := range shellEscaped {
		escaped = strings.ReplaceAll(escaped, string(ch), `\`+string(ch))
	}
	_, err := c.adb.Shell("input text " + escaped)
	if err != nil {
		return core.ErrDeviceCommand.WithCause(err)
	}
	return nil
}

// CaptureScreenshot captures the screen as PNG bytes.
func (c *Controller) CaptureScreenshot() ([]byte, error) {
	out, err := c.adb.RunBinary("exec-out", "screencap", "-p")
	if err != nil {
		return nil, core.ErrDeviceCommand.WithCause(err)
	}
	if len(out) == 0 {
		return nil, core.ErrScreenshotFailed
	}
	return out, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
