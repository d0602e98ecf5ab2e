package uitree

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/screenpilot-dev/screenpilot/pkg/core"
)

// Parse parses a UIAutomator hierarchy dump into a flattened element list.
// Handles both dump formats: class name as element tag and <node> elements
// with a class attribute.
func Parse(xmlData string) ([]*Element, error) {
	decoder := xml.NewDecoder(strings.NewReader(xmlData))

	var elements []*Element
	foundHierarchy := false
	var parseElement func() (*Element, error)

	parseElement = func() (*Element, error) {
		for {
			token, err := decoder.Token()
			if err != nil {
				return nil, err
			}

			switch t := token.(type) {
			case xml.StartElement:
				// Skip the hierarchy wrapper
				if t.Name.Local == "hierarchy" {
					foundHierarchy = true
					continue
				}

				elem := &Element{
					ClassName: t.Name.Local, // Class name is the element tag
				}

				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "text":
						elem.Text = attr.Value
					case "resource-id":
						elem.ResourceID = attr.Value
					case "content-desc":
						elem.ContentDesc = attr.Value
					case "class":
						elem.ClassName = attr.Value // Override if class attr exists
					case "package":
						elem.Package = attr.Value
					case "bounds":
						elem.Bounds = parseBounds(attr.Value)
					case "clickable":
						elem.Clickable = attr.Value == "true"
					case "scrollable":
						elem.Scrollable = attr.Value == "true"
					case "checkable":
						elem.Checkable = attr.Value == "true"
					case "checked":
						elem.Checked = attr.Value == "true"
					}
				}

				// Parse children recursively
				for {
					child, err := parseElement()
					if err != nil || child == nil {
						break
					}
					elem.Children = append(elem.Children, child)
				}

				return elem, nil

			case xml.EndElement:
				return nil, nil // End of current element
			}
		}
	}

	var parseErr error
	for {
		elem, err := parseElement()
		if err != nil {
			// io.EOF is expected at end of document
			if err.Error() != "EOF" {
				parseErr = err
			}
			break
		}
		if elem != nil {
			elements = append(elements, flatten(elem, 0)...)
		}
	}

	if parseErr != nil && len(elements) == 0 {
		return nil, parseErr
	}

	if !foundHierarchy {
		return nil, fmt.Errorf("invalid hierarchy dump: no hierarchy element found")
	}

	return elements, nil
}

// flatten flattens a tree of elements into a list, setting depth.
func flatten(elem *Element, depth int) []*Element {
	elem.Depth = depth
	result := []*Element{elem}
	for _, child := range elem.Children {
		result = append(result, flatten(child, depth+1)...)
	}
	return result
}

// parseBounds parses an Android bounds string "[x1,y1][x2,y2]".
func parseBounds(s string) core.Bounds {
	s = strings.ReplaceAll(s, "][", ",")
	s = strings.Trim(s, "[]")
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return core.Bounds{}
	}

	x1, _ := strconv.Atoi(parts[0])
	y1, _ := strconv.Atoi(parts[1])
	x2, _ := strconv.Atoi(parts[2])
	y2, _ := strconv.Atoi(parts[3])

	return core.Bounds{
		X:      x1,
		Y:      y1,
		Width:  x2 - x1,
		Height: y2 - y1,
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
