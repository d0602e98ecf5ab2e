// Package vision localizes screen elements from natural language using a
// local Ollama vision model.
package vision

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/screenpilot-dev/screenpilot/pkg/core"
	"github.com/screenpilot-dev/screenpilot/pkg/logger"
	"github.com/screenpilot-dev/screenpilot/pkg/screenshot"
)

// DefaultModel is the vision model used when none is configured.
const DefaultModel = "llava-phi3"

// Result is the vision model's answer for one element query.
type Result struct {
	Description string
	Coord       *core.Point // nil when the model found nothing
	Confidence  float64     // 0.0-1.0
}

// Client talks to an Ollama server and shares the screenshot cache with the
// rest of the cascade.
type Client struct {
	model      string
	baseURL    string
	httpClient *http.Client
	cache      *screenshot.Cache

	available    bool
	screenWidth  int
	screenHeight int
}

// NewClient creates a Client against the given Ollama base URL. Availability
// is probed once: the server must respond and have the model pulled.
func NewClient(baseURL, model string, cache *screenshot.Cache) *Client {
	if model == "" {
		model = DefaultModel
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	baseURL = strings.TrimSuffix(baseURL, "/api")

	c := &Client{
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		cache: cache,
		// Defaults until the device reports its real size
		screenWidth:  1080,
		screenHeight: 2400,
	}
	c.available = c.probe()
	return c
}

// Available reports whether the Ollama server is reachable with the model pulled.
func (c *Client) Available() bool {
	return c.available
}

// SetScreenSize updates the dimensions used for coordinate bounds in prompts
// and for sanity-checking returned coordinates.
func (c *Client) SetScreenSize(width, height int) {
	if width > 0 && height > 0 {
		c.screenWidth = width
		c.screenHeight = height
	}
}

// StartBackgroundCapture begins pre-warming screenshots so FindElement can
// skip the capture round trip.
func (c *Client) StartBackgroundCapture() {
	if c.cache != nil {
		c.cache.StartWatcher(0)
	}
}

// StopBackgroundCapture stops the pre-warm loop.
func (c *Client) StopBackgroundCapture() {
	if c.cache != nil {
		c.cache.StopWatcher()
	}
}

// probe checks the server and model list.
func (c *Client) probe() bool {
	resp, err := c.httpClient.Get(c.baseURL + "/api/tags")
	if err != nil {
		logger.Warn("ollama not reachable at %s, vision tier disabled: %v", c.baseURL, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("ollama returned status %d, vision tier disabled", resp.StatusCode)
		return false
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return false
	}
	for _, m := range tags.Models {
		if strings.Contains(m.Name, c.model) {
			return true
		}
	}
	logger.Warn("model %q not pulled on ollama server, vision tier disabled", c.model)
	return false
}

type chatMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Error string `json:"error,omitempty"`
}

// Analyze sends a screenshot and a prompt to the model and returns the raw
// text content of the reply.
func (c *Client) Analyze(png []byte, prompt string, temperature float64) (string, error) {
	if !c.available {
		return "", core.ErrVisionUnavailable
	}

	png = downscale(png)

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{{
			Role:    "user",
			Content: prompt,
			Images:  []string{base64.StdEncoding.EncodeToString(png)},
		}},
		Stream:  false,
		Options: map[string]any{"temperature": temperature},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Post(c.baseURL+"/api/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama request failed: %s", strings.TrimSpace(string(msg)))
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	if response.Error != "" {
		return "", fmt.Errorf("ollama error: %s", response.Error)
	}

	return strings.TrimSpace(response.Message.Content), nil
}
