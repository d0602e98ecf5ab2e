// Package ocr finds on-screen text by running Tesseract over a screenshot.
package ocr

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/xrash/smetrics"

	"github.com/screenpilot-dev/screenpilot/pkg/core"
	"github.com/screenpilot-dev/screenpilot/pkg/logger"
)

// minWordConf drops Tesseract rows below this confidence (0-100) as noise.
const minWordConf = 30

// minMatchConf is the default confidence floor for search results.
const minMatchConf = 0.6

// Match is a recognized text run with its bounding box.
type Match struct {
	Text   string
	Conf   float64 // 0.0-1.0
	Bounds core.Bounds
}

// Center returns the tap point of the match.
func (m Match) Center() core.Point {
	return m.Bounds.Center()
}

// ScoredMatch pairs a fuzzy similarity score with its match.
type ScoredMatch struct {
	Score float64
	Match Match
}

// Engine runs Tesseract and caches the last extraction per screenshot.
type Engine struct {
	binary string
	lang   string

	mu          sync.Mutex
	lastHash    uint64
	lastMatches []Match
}

// New probes for the tesseract binary. The engine stays usable when the
// binary is missing; Available reports false and the OCR tier is skipped.
func New(lang string) *Engine {
	binary, err := exec.LookPath("tesseract")
	if err != nil {
		logger.Warn("tesseract not found, OCR tier disabled")
		binary = ""
	}
	if lang == "" {
		lang = "eng"
	}
	return &Engine{binary: binary, lang: lang}
}

// Available reports whether the tesseract binary was found.
func (e *Engine) Available() bool {
	return e.binary != ""
}

// ExtractText runs OCR over the PNG and returns every recognized word and
// line with bounds. Repeated calls with the same image reuse the last run.
func (e *Engine) ExtractText(png []byte) ([]Match, error) {
	if !e.Available() {
		return nil, core.ErrOCRUnavailable
	}

	h := fnv.New64a()
	h.Write(png)
	hash := h.Sum64()

	e.mu.Lock()
	defer e.mu.Unlock()

	if hash == e.lastHash && e.lastMatches != nil {
		return e.lastMatches, nil
	}

	tmp, err := os.CreateTemp("", "screenpilot-ocr-*.png")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(png); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	// Sparse text mode: mobile screens are scattered labels, not paragraphs
	cmd := exec.Command(e.binary, tmp.Name(), "stdout", "-l", e.lang, "--psm", "11", "tsv")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	matches := parseTSV(stdout.String())
	e.lastHash = hash
	e.lastMatches = matches
	logger.Debug("ocr extracted %d text runs from %s", len(matches), filepath.Base(tmp.Name()))
	return matches, nil
}

// tsv columns: level page block par line word left top width height conf text
const (
	colBlock = 2
	colPar   = 3
	colLine  = 4
	colLeft  = 6
	colTop   = 7
	colWidth = 8
	colHigh  = 9
	colConf  = 10
	colText  = 11
)

// parseTSV turns Tesseract TSV output into word matches plus one merged
// match per line, so multi-word queries can hit whole labels.
func parseTSV(tsv string) []Match {
	type lineKey struct{ block, par, line int }

	var words []Match
	lineWords := make(map[lineKey][]Match)
	var lineOrder []lineKey

	for i, row := range strings.Split(tsv, "\n") {
		if i == 0 { // header
			continue
		}
		cols := strings.Split(row, "\t")
		if len(cols) <= colText {
			continue
		}

		text := strings.TrimSpace(cols[colText])
		conf, err := strconv.ParseFloat(cols[colConf], 64)
		if err != nil || text == "" || conf < minWordConf {
			continue
		}

		left, _ := strconv.Atoi(cols[colLeft])
		top, _ := strconv.Atoi(cols[colTop])
		width, _ := strconv.Atoi(cols[colWidth])
		height, _ := strconv.Atoi(cols[colHigh])

		m := Match{
			Text:   text,
			Conf:   conf / 100.0,
			Bounds: core.Bounds{X: left, Y: top, Width: width, Height: height},
		}
		words = append(words, m)

		block, _ := strconv.Atoi(cols[colBlock])
		par, _ := strconv.Atoi(cols[colPar])
		line, _ := strconv.Atoi(cols[colLine])
		key := lineKey{block, par, line}
		if _, seen := lineWords[key]; !seen {
			lineOrder = append(lineOrder, key)
		}
		lineWords[key] = append(lineWords[key], m)
	}

	matches := words
	for _, key := range lineOrder {
		group := lineWords[key]
		if len(group) < 2 {
			continue
		}
		matches = append(matches, mergeLine(group))
	}
	return matches
}

// mergeLine combines the words of one line into a single match spanning
// their union bounds, with the minimum word confidence.
func mergeLine(group []Match) Match {
	texts := make([]string, len(group))
	minX, minY := group[0].Bounds.X, group[0].Bounds.Y
	maxX := group[0].Bounds.X + group[0].Bounds.Width
	maxY := group[0].Bounds.Y + group[0].Bounds.Height
	conf := group[0].Conf

	for i, w := range group {
		texts[i] = w.Text
		if w.Bounds.X < minX {
			minX = w.Bounds.X
		}
		if w.Bounds.Y < minY {
			minY = w.Bounds.Y
		}
		if r := w.Bounds.X + w.Bounds.Width; r > maxX {
			maxX = r
		}
		if b := w.Bounds.Y + w.Bounds.Height; b > maxY {
			maxY = b
		}
		if w.Conf < conf {
			conf = w.Conf
		}
	}

	return Match{
		Text:   strings.Join(texts, " "),
		Conf:   conf,
		Bounds: core.Bounds{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY},
	}
}

// FindText returns matches containing the query, best confidence first.
func (e *Engine) FindText(png []byte, query string) ([]Match, error) {
	matches, err := e.ExtractText(png)
	if err != nil {
		return nil, err
	}
	return searchMatches(matches, query), nil
}

// searchMatches filters matches by case-insensitive substring containment.
func searchMatches(matches []Match, query string) []Match {
	queryLower := strings.ToLower(query)
	var results []Match
	for _, m := range matches {
		if m.Conf < minMatchConf {
			continue
		}
		if strings.Contains(strings.ToLower(m.Text), queryLower) {
			results = append(results, m)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Conf > results[j].Conf
	})
	return results
}

// FindTextFuzzy returns matches whose Jaro-Winkler similarity to the query
// meets the threshold, best score first.
func (e *Engine) FindTextFuzzy(png []byte, query string, threshold float64) ([]ScoredMatch, error) {
	matches, err := e.ExtractText(png)
	if err != nil {
		return nil, err
	}
	return fuzzySearchMatches(matches, query, threshold), nil
}

func fuzzySearchMatches(matches []Match, query string, threshold float64) []ScoredMatch {
	queryLower := strings.ToLower(query)
	var results []ScoredMatch
	for _, m := range matches {
		if m.Conf < minMatchConf {
			continue
		}
		score := smetrics.JaroWinkler(queryLower, strings.ToLower(m.Text), 0.7, 4)
		if score >= threshold {
			results = append(results, ScoredMatch{Score: score, Match: m})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
