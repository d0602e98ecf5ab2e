package uitree

import (
	"strings"
	"sync"

	"github.com/screenpilot-dev/screenpilot/pkg/adb"
	"github.com/screenpilot-dev/screenpilot/pkg/core"
	"github.com/screenpilot-dev/screenpilot/pkg/logger"
)

const dumpPath = "/sdcard/ui_dump.xml"

// Analyzer captures the UI hierarchy and answers element queries against the
// most recent capture.
type Analyzer struct {
	adb *adb.Client

	mu       sync.Mutex
	elements []*Element
}

// NewAnalyzer creates an Analyzer on the given ADB client.
func NewAnalyzer(client *adb.Client) *Analyzer {
	return &Analyzer{adb: client}
}

// Capture refreshes the hierarchy from the device. With force false, a
// previous capture is reused.
func (a *Analyzer) Capture(force bool) ([]*Element, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !force && a.elements != nil {
		return a.elements, nil
	}

	if _, err := a.adb.Shell("uiautomator dump " + dumpPath); err != nil {
		return nil, core.ErrDeviceCommand.WithCause(err)
	}
	xmlContent, err := a.adb.Shell("cat " + dumpPath)
	if err != nil {
		return nil, core.ErrDeviceCommand.WithCause(err)
	}
	if strings.TrimSpace(xmlContent) == "" {
		return nil, core.ErrDumpEmpty
	}

	elements, err := Parse(xmlContent)
	if err != nil {
		return nil, core.ErrDumpEmpty.WithCause(err)
	}

	logger.Debug("ui tree captured: %d elements", len(elements))
	a.elements = elements
	return elements, nil
}

// Elements returns the most recent capture without a device round trip.
func (a *Analyzer) Elements() []*Element {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.elements
}

// VisibleTexts returns the visible text of every element carrying more than
// one character, in hierarchy order.
func (a *Analyzer) VisibleTexts() ([]string, error) {
	elements, err := a.Capture(false)
	if err != nil {
		return nil, err
	}

	var texts []string
	for _, e := range elements {
		if len(e.Text) > 1 {
			texts = append(texts, e.Text)
		}
	}
	return texts, nil
}
