package utils

import (
	"strings"
	"unicode"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"golang.org/x/text/unicode/norm"
)

// minSuggestionSimilarity is the lowest similarity accepted for a "did you mean" hint
const minSuggestionSimilarity = 0.5

// NormalizeText trims, strips accents, transliterates to ASCII and
// lower-cases input so that "Zürich" and "zurich" compare equal whether the
// accent arrives precomposed or as a combining mark.
func NormalizeText(input string) string {
	decomposed := norm.NFD.String(strings.TrimSpace(input))
	stripped := strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, decomposed)
	return strings.ToLower(unidecode.Unidecode(stripped))
}

// ContainsFold reports whether haystack contains needle ignoring case and accents
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(NormalizeText(haystack), NormalizeText(needle))
}

// Similarity returns 1 - levenshtein(a, b) / max(len(a), len(b))
func Similarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// SuggestClosest picks the candidate closest to query, or "" when nothing is
// similar enough or query already matches a candidate.
func SuggestClosest(query string, candidates []string) string {
	q := NormalizeText(query)
	if q == "" || len(candidates) == 0 {
		return ""
	}

	byNormalized := make(map[string]string, len(candidates))
	keys := make([]string, 0, len(candidates))
	for _, c := range candidates {
		n := NormalizeText(c)
		if n == "" {
			continue
		}
		if n == q {
			return ""
		}
		if _, seen := byNormalized[n]; !seen {
			byNormalized[n] = c
			keys = append(keys, n)
		}
	}
	if len(keys) == 0 {
		return ""
	}

	cm := closestmatch.New(keys, []int{2, 3})
	best := cm.Closest(q)
	if best == "" || Similarity(q, best) < minSuggestionSimilarity {
		return ""
	}
	return byNormalized[best]
}
