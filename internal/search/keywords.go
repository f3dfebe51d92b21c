package search

import (
	"strings"
	"unicode"
)

var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "join": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"experience": true, "skills": true, "years": true, "strong": true,
}

// Keywords tokenizes text into lowercase words, keeping tech suffixes such as
// "c++", "c#" and "node.js". Words shorter than two runes and stop words are dropped.
func Keywords(text string) map[string]bool {
	kw := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if len([]rune(w)) >= 2 && !stopWords[w] {
			kw[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return kw
}

// SplitSkills splits a skills field on commas, semicolons, pipes and newlines.
func SplitSkills(reqSkills string) []string {
	parts := strings.FieldsFunc(reqSkills, func(r rune) bool {
		return r == ',' || r == ';' || r == '|' || r == '\n'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(p), "-*•"))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MatchedSkills returns the skills of reqSkills whose every keyword appears in
// queryKeywords, in their original order.
func MatchedSkills(reqSkills string, queryKeywords map[string]bool) []string {
	var out []string
	for _, skill := range SplitSkills(reqSkills) {
		words := Keywords(skill)
		if len(words) == 0 {
			continue
		}
		all := true
		for w := range words {
			if !queryKeywords[w] {
				all = false
				break
			}
		}
		if all {
			out = append(out, skill)
		}
	}
	return out
}
