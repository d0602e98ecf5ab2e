// Package uitree captures and searches the Android accessibility hierarchy.
package uitree

import (
	"fmt"

	"github.com/screenpilot-dev/screenpilot/pkg/core"
)

// Element represents one accessible node on screen at capture time.
// Snapshots are immutable; a new capture supersedes them wholesale.
type Element struct {
	Text        string
	ResourceID  string
	ContentDesc string
	ClassName   string
	Package     string
	Bounds      core.Bounds
	Clickable   bool
	Scrollable  bool
	Checkable   bool
	Checked     bool
	Depth       int // depth in hierarchy
	Children    []*Element
}

// Center returns the element's tap point.
func (e *Element) Center() core.Point {
	return e.Bounds.Center()
}

// Label returns the best human-readable identifier for the element:
// text, then content description, then class name.
func (e *Element) Label() string {
	if e.Text != "" {
		return e.Text
	}
	if e.ContentDesc != "" {
		return e.ContentDesc
	}
	return e.ClassName
}

// IsButton reports whether the class name marks the element as a button.
func (e *Element) IsButton() bool {
	return containsIgnoreCase(e.ClassName, "button")
}

func (e *Element) String() string {
	return fmt.Sprintf("Element(text=%q, desc=%q, class=%q, bounds=%+v)",
		e.Text, e.ContentDesc, e.ClassName, e.Bounds)
}
