// ABOUTME: Matcher finds diagnostic trees relevant to a free-text symptom report
// ABOUTME: Pure case-insensitive substring matching, no I/O
package diagnostic

import (
	"fmt"
	"strings"
)

// NoMatchContext is injected into the troubleshoot prompt when no tree matches
const NoMatchContext = "No specific diagnostic pattern matched. Use general troubleshooting approach."

// Match returns every tree whose trigger keywords appear in the user's text.
// Matching is case-insensitive substring search; zero, one, or many trees may
// match. Results are in table declaration order regardless of which keyword
// hit, so repeated calls with the same input are identical.
func Match(userText string) []Tree {
	lower := strings.ToLower(userText)

	var matched []Tree
	for _, tree := range Trees {
		for _, kw := range tree.TriggerKeywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, tree)
				break
			}
		}
	}
	return matched
}

// Context renders the matched trees into prompt context for the troubleshoot
// agent: the first three questions and causes per tree. Returns NoMatchContext
// when nothing matched.
func Context(userText string) string {
	matched := Match(userText)
	if len(matched) == 0 {
		return NoMatchContext
	}

	var sections []string
	for _, tree := range matched {
		title := titleCase(strings.ReplaceAll(tree.ID, "_", " "))
		sections = append(sections, fmt.Sprintf(
			"\n**%s:**\n- Key questions: %s\n- Common causes: %s\n",
			title,
			strings.Join(head(tree.Questions, 3), ", "),
			strings.Join(head(tree.CommonCauses, 3), ", "),
		))
	}
	return strings.Join(sections, "\n")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
