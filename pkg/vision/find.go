package vision

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/screenpilot-dev/screenpilot/pkg/core"
	"github.com/screenpilot-dev/screenpilot/pkg/logger"
)

// edgeMargin rejects coordinates this close to any screen border. Models
// that fail to locate an element tend to hallucinate border points.
const edgeMargin = 10

// FindElement localizes a described element on the current screen. It uses
// the cache's pre-warmed capture when fresh, falling back to an on-demand one.
func (c *Client) FindElement(query string) (Result, error) {
	if !c.available {
		return Result{}, core.ErrVisionUnavailable
	}

	cap, err := c.cache.Get(false)
	if err != nil {
		return Result{}, err
	}

	prompt := fmt.Sprintf(`You are analyzing a mobile app screenshot (resolution: %dx%d).

Find the element: "%s"

Respond ONLY with valid JSON in this exact format:
{
    "found": true/false,
    "x": pixel_x_coordinate,
    "y": pixel_y_coordinate,
    "confidence": 0-100,
    "description": "brief description of what you found"
}

Rules:
- x must be between 0 and %d
- y must be between 0 and %d
- If not found, set found=false and omit x,y
- Return ONLY the JSON, no other text`,
		c.screenWidth, c.screenHeight, query, c.screenWidth, c.screenHeight)

	content, err := c.Analyze(cap.PNG, prompt, 0.1)
	if err != nil {
		return Result{}, err
	}

	result := c.parseFindResponse(content, query)
	if result.Coord != nil && !c.coordPlausible(*result.Coord) {
		logger.Debug("vision coordinate %v rejected as implausible", *result.Coord)
		return Result{Description: "coordinate out of plausible range", Confidence: 0}, nil
	}
	return result, nil
}

// parseFindResponse extracts the structured answer, tolerating code fences
// and falling back to scraping coordinates out of prose.
func (c *Client) parseFindResponse(content, query string) Result {
	var data struct {
		Found       bool    `json:"found"`
		X           int     `json:"x"`
		Y           int     `json:"y"`
		Confidence  float64 `json:"confidence"`
		Description string  `json:"description"`
	}

	if err := json.Unmarshal([]byte(stripFences(content)), &data); err == nil {
		if !data.Found {
			return Result{Description: "could not find: " + query, Confidence: 0}
		}
		conf := data.Confidence
		if conf > 1 { // model answered on the 0-100 scale
			conf /= 100.0
		}
		desc := data.Description
		if desc == "" {
			desc = query
		}
		return Result{
			Description: desc,
			Coord:       &core.Point{X: data.X, Y: data.Y},
			Confidence:  conf,
		}
	}

	// JSON failed: scrape "(x, y)"-style coordinates out of the prose
	if p := c.extractCoordinates(content); p != nil {
		return Result{Description: query, Coord: p, Confidence: 0.6}
	}
	return Result{Description: content, Confidence: 0.3}
}

var coordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)coordinates?\s*\(?\s*(\d+)\s*,\s*(\d+)\s*\)?`),
	regexp.MustCompile(`(?i)position\s*\(?\s*(\d+)\s*,\s*(\d+)\s*\)?`),
	regexp.MustCompile(`(?i)x\s*[:=]\s*(\d+).*?y\s*[:=]\s*(\d+)`),
	regexp.MustCompile(`\((\d+)\s*,\s*(\d+)\)`),
}

// extractCoordinates pulls the first in-bounds coordinate pair out of text.
func (c *Client) extractCoordinates(text string) *core.Point {
	for _, re := range coordPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			x, _ := strconv.Atoi(m[1])
			y, _ := strconv.Atoi(m[2])
			if x >= 0 && x <= c.screenWidth && y >= 0 && y <= c.screenHeight {
				return &core.Point{X: x, Y: y}
			}
		}
	}
	return nil
}

// coordPlausible rejects out-of-bounds and border-hugging coordinates.
func (c *Client) coordPlausible(p core.Point) bool {
	if p.X < 0 || p.X > c.screenWidth || p.Y < 0 || p.Y > c.screenHeight {
		return false
	}
	if p.X < edgeMargin || p.X > c.screenWidth-edgeMargin ||
		p.Y < edgeMargin || p.Y > c.screenHeight-edgeMargin {
		return false
	}
	return true
}

// stripFences removes a markdown code fence wrapper if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// DescribeScreen asks the model for a short description of the current screen.
func (c *Client) DescribeScreen() (string, error) {
	cap, err := c.cache.Get(false)
	if err != nil {
		return "", err
	}
	prompt := `Briefly describe what you see on this mobile screen.

Include:
- App name
- Main content (2-3 key items)
- Primary actions available

Keep it under 100 words.`
	return c.Analyze(cap.PNG, prompt, 0.3)
}

// AnswerQuestion answers a free-form question about the current screen.
func (c *Client) AnswerQuestion(question string) (string, error) {
	cap, err := c.cache.Get(false)
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf(`You are analyzing a mobile app screenshot.

Question: %s

Provide a clear, concise answer based only on what you see in the image.
If you cannot answer based on the image, say so.`, question)
	return c.Analyze(cap.PNG, prompt, 0.2)
}
