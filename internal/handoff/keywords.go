// ABOUTME: Fixed trigger phrase tables for escalation decisions
// ABOUTME: Counts are pinned: 8 user-request, 10 sensitive, 9 safety entries
package handoff

import "strings"

// UserRequestPhrases trigger a UserRequest escalation. The support desk
// serves both Portuguese and English customers, so both appear here.
var UserRequestPhrases = []string{
	"falar com humano",
	"falar com atendente",
	"falar com pessoa",
	"atendimento humano",
	"speak to human",
	"talk to agent",
	"human support",
	"real person",
}

// SensitiveKeywords trigger a SensitiveTopic escalation
var SensitiveKeywords = []string{
	"acidente",
	"recall",
	"processo",
	"advogado",
	"lesão",
	"ferimento",
	"accident",
	"injury",
	"lawsuit",
	"legal",
}

// SafetyPhrases trigger a SafetyConcern escalation
var SafetyPhrases = []string{
	"freio não funciona",
	"brakes not working",
	"airbag",
	"vazamento combustível",
	"fuel leak",
	"fumaça",
	"smoke",
	"fogo",
	"fire",
}

// maxWordGap is how many extra words may sit between consecutive phrase
// words before a multi-word phrase no longer counts as present
const maxWordGap = 2

// containsAnyPhrase reports whether the text contains any of the phrases.
// Single-word phrases use plain substring search. Multi-word phrases match
// when their words appear in order, each within a small gap of the previous,
// so "speak to a human" still matches "speak to human" and "brakes aren't
// working" still matches "brakes not working".
func containsAnyPhrase(text string, phrases []string) bool {
	normalized := normalize(text)
	words := strings.Fields(normalized)

	for _, phrase := range phrases {
		if containsPhrase(normalized, words, phrase) {
			return true
		}
	}
	return false
}

func containsPhrase(normalized string, words []string, phrase string) bool {
	parts := strings.Fields(normalize(phrase))
	if len(parts) == 0 {
		return false
	}
	if len(parts) == 1 {
		return strings.Contains(normalized, parts[0])
	}

	// Every word that can open the phrase is tried as an anchor. A single
	// greedy walk is not enough: an early anchor can swallow a later, real
	// occurrence and then overflow the gap budget.
	for i := range words {
		if matchWord(words[i], parts[0]) && matchFrom(words[i+1:], parts[1:]) {
			return true
		}
	}
	return false
}

// matchFrom walks the remaining phrase words through words, allowing at most
// maxWordGap strangers between consecutive matches
func matchFrom(words, parts []string) bool {
	next := 0
	gap := 0
	for _, w := range words {
		if matchWord(w, parts[next]) {
			next++
			gap = 0
			if next == len(parts) {
				return true
			}
			continue
		}
		gap++
		if gap > maxWordGap {
			return false
		}
	}
	return false
}

// minStemLen is the phrase-word length from which prefix matching applies
const minStemLen = 4

// matchWord reports whether a text word satisfies a phrase word. Short
// phrase words (articles, negations like "not") must match exactly so that
// "noted" never counts; longer ones match as prefixes so inflected forms
// still count ("leak"/"leaking", "funciona"/"funcionando").
func matchWord(w, part string) bool {
	if len(part) >= minStemLen {
		return strings.HasPrefix(w, part)
	}
	return w == part
}

// normalize lowercases, expands English negative contractions, and strips
// punctuation that would break word matching
func normalize(text string) string {
	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, "n't", " not")
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '.', ',', '!', '?', ';', ':', '"', '(', ')':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
