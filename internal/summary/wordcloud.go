package summary

import (
	"sort"
	"strings"
	"unicode"

	"hubstat/internal/dataset"
)

// Term is one word cloud entry.
type Term struct {
	Text   string
	Weight int
}

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "by": {}, "for": {}, "in": {},
	"of": {}, "on": {}, "or": {}, "the": {}, "to": {}, "with": {},
}

// WordCloud weighs the words of every dataset_type value, ignoring any
// bracketed pipeline suffix. A limit <= 0 returns every term.
func WordCloud(table *dataset.Table, limit int) []Term {
	weights := make(map[string]int)
	for _, value := range table.Column(dataset.ColumnDatasetType) {
		text, ok := value.(string)
		if !ok {
			continue
		}
		if idx := strings.IndexByte(text, '['); idx >= 0 {
			text = text[:idx]
		}
		for _, word := range tokenize(text) {
			weights[word]++
		}
	}

	terms := make([]Term, 0, len(weights))
	for text, weight := range weights {
		terms = append(terms, Term{Text: text, Weight: weight})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Weight != terms[j].Weight {
			return terms[i].Weight > terms[j].Weight
		}
		return terms[i].Text < terms[j].Text
	})
	if limit > 0 && len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := fields[:0]
	for _, field := range fields {
		if len(field) < 2 {
			continue
		}
		if _, stop := stopWords[field]; stop {
			continue
		}
		words = append(words, field)
	}
	return words
}
