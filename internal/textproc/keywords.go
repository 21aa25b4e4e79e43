package textproc

import (
	"sort"
	"strings"
)

// maxKeywords caps the ranked keyword list
const maxKeywords = 50

// stopwords filters articles, conjunctions, prepositions, auxiliaries and
// resume boilerplate out of keyword ranking. Only words longer than three
// characters survive tokenization, so short stopwords are omitted.
var stopwords = map[string]struct{}{
	"with": {}, "this": {}, "that": {}, "from": {}, "have": {}, "will": {},
	"your": {}, "they": {}, "their": {}, "about": {}, "more": {}, "been": {},
	"being": {}, "would": {}, "could": {}, "should": {}, "also": {}, "other": {},
	"than": {}, "just": {}, "only": {}, "over": {}, "such": {}, "into": {},
	"through": {}, "during": {}, "before": {}, "after": {}, "above": {},
	"below": {}, "between": {}, "under": {}, "again": {}, "further": {},
	"then": {}, "once": {}, "here": {}, "there": {}, "when": {}, "where": {},
	"which": {}, "while": {}, "what": {}, "were": {}, "does": {}, "doing": {},
	"each": {}, "most": {}, "some": {}, "very": {}, "them": {}, "these": {},
	"those": {}, "both": {}, "same": {}, "must": {}, "shall": {}, "because": {},
	"company": {}, "team": {}, "work": {}, "working": {}, "looking": {},
	"position": {}, "role": {}, "required": {}, "requirements": {},
	"qualifications": {}, "ability": {}, "knowledge": {}, "understanding": {},
	"excellent": {}, "strong": {}, "good": {}, "years": {}, "year": {},
}

// TermFrequencies tokenizes text to lowercase terms longer than three
// characters, drops stopwords, and returns a term to count map. Pure and
// total: empty input yields an empty map.
func TermFrequencies(text string) map[string]int {
	freqs := make(map[string]int)
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		word = strings.Trim(word, ".'-")
		if len(word) <= 3 {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		freqs[word]++
	}
	return freqs
}

// ExtractKeywords returns the ranked, deduplicated keyword list for the
// text: sorted by descending frequency with an alphabetical tiebreak, capped
// at 50 entries.
func ExtractKeywords(text string) []string {
	freqs := TermFrequencies(text)
	terms := make([]string, 0, len(freqs))
	for term := range freqs {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freqs[terms[i]] != freqs[terms[j]] {
			return freqs[terms[i]] > freqs[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxKeywords {
		terms = terms[:maxKeywords]
	}
	return terms
}

// RepeatedTerms returns terms appearing at least twice, alphabetically
// ordered. Used to derive the "important words" of a job description.
func RepeatedTerms(text string) []string {
	freqs := TermFrequencies(text)
	var terms []string
	for term, n := range freqs {
		if n >= 2 {
			terms = append(terms, term)
		}
	}
	sort.Strings(terms)
	return terms
}
