// Package dedupe detects duplicate and overlapping tasks for candidate
// action items, using keyword overlap plus string similarity against a
// pre-fetched snapshot of the task population.
package dedupe

import (
	"sort"
	"strings"
)

// stopWords are excluded from keyword extraction.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
		"of", "with", "by", "from", "as", "is", "was", "are", "were", "be",
		"been", "have", "has", "had", "do", "does", "did", "will", "would",
		"should", "could", "may", "might", "must", "can", "this", "that",
		"these", "those", "i", "you", "he", "she", "it", "we", "they",
		"me", "him", "her", "us", "them", "my", "your", "his",
		"its", "our", "their", "about", "into", "through", "during", "before",
		"after", "above", "below", "up", "down", "out", "off", "over",
		"under", "again", "further", "then", "once",
	} {
		stopWords[w] = struct{}{}
	}
}

const maxKeywords = 5

// ExtractKeywords pulls up to five ranked keywords out of action text:
// tokens longer than three characters, stop words removed, punctuation
// stripped, ranked longest-first, deduplicated.
func ExtractKeywords(text string) []string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if len(word) <= 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		keywords = append(keywords, strings.Trim(word, ".,!?;:()[]{}"))
	}

	// Longest first; stable so equal-length keywords keep text order.
	sort.SliceStable(keywords, func(i, j int) bool {
		return len(keywords[i]) > len(keywords[j])
	})

	var unique []string
	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		unique = append(unique, kw)
		if len(unique) == maxKeywords {
			break
		}
	}
	return unique
}
