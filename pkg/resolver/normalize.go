package resolver

import (
	"regexp"
	"strconv"
	"strings"
)

// stripWords are removed from search queries: action verbs, filler, and
// generic UI-type words that never appear in on-screen labels.
var stripWords = map[string]bool{
	"click": true, "tap": true, "select": true, "press": true, "on": true,
	"the": true, "a": true, "an": true, "that": true, "this": true,
	"with": true, "video": true, "post": true, "button": true, "icon": true,
	"link": true, "image": true, "photo": true, "picture": true,
	"thumbnail": true, "item": true, "reel": true, "story": true,
	"pin": true, "result": true, "it": true,
}

// actionVerbs is the fallback strip set when stripWords would empty the query.
var actionVerbs = map[string]bool{
	"click": true, "tap": true, "select": true, "press": true,
	"open": true, "find": true, "choose": true,
}

// visionWords name purely visual concepts that no text-based tier can see.
// Queries containing them route straight to the vision model.
var visionWords = map[string]bool{
	"red": true, "blue": true, "green": true, "yellow": true,
	"orange": true, "purple": true, "pink": true,
	"color": true, "colored": true, "car": true, "cat": true,
	"dog": true, "person": true, "face": true, "thumbnail": true,
}

// visionPhrases are multi-word visual cues matched by containment.
var visionPhrases = []string{"photo of", "image of", "picture of"}

// ordinalWords map position vocabulary to 1-based positions; "last" is the
// -1 sentinel resolved against the list length at lookup time.
var ordinalWords = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"1st": 1, "2nd": 2, "3rd": 3, "4th": 4, "5th": 5,
	"last": -1,
}

// ordinalNames is the reverse mapping used to phrase vision fallback queries.
var ordinalNames = map[int]string{
	1: "first", 2: "second", 3: "third", 4: "fourth", 5: "fifth",
}

var ordinalRe = regexp.MustCompile(`^(?:the\s+)?(\w+)\s+(.+)$`)

// ordinalQuery is a detected "Nth item of type T" request.
type ordinalQuery struct {
	position int // 1-based; -1 means last
	itemType string
}

// normalized is the normalizer's output for one raw query.
type normalized struct {
	raw            string // lower-cased, trimmed original
	searchText     string // raw with strip words removed
	requiresVision bool
	ordinal        *ordinalQuery
}

// normalize lower-cases and trims the query, detects ordinal and
// vision-mandatory shapes, and produces the cleaned search text.
func normalize(query string) normalized {
	raw := strings.ToLower(strings.TrimSpace(query))
	return normalized{
		raw:            raw,
		searchText:     cleanSearchQuery(raw),
		requiresVision: needsVision(raw),
		ordinal:        detectOrdinal(raw),
	}
}

// cleanSearchQuery strips action verbs and UI-type words to leave the actual
// content to search for:
//
//	"click on how a hungry video" -> "how hungry"
//	"tap the subscribe button"    -> "subscribe"
//
// If stripping removes every word, only verbs are removed instead; the query
// is never emptied entirely.
func cleanSearchQuery(raw string) string {
	words := strings.Fields(raw)
	var cleaned []string
	for _, w := range words {
		if !stripWords[w] {
			cleaned = append(cleaned, w)
		}
	}
	if len(cleaned) == 0 {
		for _, w := range words {
			if !actionVerbs[w] {
				cleaned = append(cleaned, w)
			}
		}
	}
	if len(cleaned) == 0 {
		return raw
	}
	return strings.Join(cleaned, " ")
}

// needsVision reports whether the query names a purely visual concept.
func needsVision(raw string) bool {
	for _, w := range strings.Fields(raw) {
		if visionWords[w] {
			return true
		}
	}
	for _, phrase := range visionPhrases {
		if strings.Contains(raw, phrase) {
			return true
		}
	}
	return false
}

// detectOrdinal matches queries like "the first post" or "second video".
func detectOrdinal(raw string) *ordinalQuery {
	m := ordinalRe.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	pos, ok := ordinalWords[m[1]]
	if !ok {
		return nil
	}
	return &ordinalQuery{position: pos, itemType: strings.TrimSpace(m[2])}
}

// ordinalPhrase renders a position and item type back into natural language
// for the vision fallback ("the third video").
func ordinalPhrase(position int, itemType string) string {
	name, ok := ordinalNames[position]
	if !ok {
		if position == -1 {
			name = "last"
		} else {
			name = strconv.Itoa(position) + "th"
		}
	}
	return "the " + name + " " + itemType
}
