// ABOUTME: Safety keyword scanner for user messages
// ABOUTME: First matching rule in table order wins; ordering is a pinned contract
package safety

import "strings"

// Rule maps one safety-critical keyword to the warning shown to the user
type Rule struct {
	Keyword string
	Warning string
}

// Rules is the fixed safety table. Order matters: Scan applies the first
// matching rule only, so this must stay a slice, never a map.
var Rules = []Rule{
	{"brake", "Brake issues can be life-threatening. If you're unsure about your brakes, do not drive the vehicle."},
	{"steering", "Steering problems are dangerous. Have the vehicle towed if steering feels unsafe."},
	{"smoke", "Smoke can indicate fire risk. Pull over safely and exit the vehicle if you see smoke."},
	{"fire", "If you smell burning or see flames, stop immediately, exit the vehicle, and call emergency services."},
	{"airbag", "Airbag warning lights indicate a serious safety system issue. Get professional inspection immediately."},
}

// Scan checks the user's text for safety-critical keywords and returns the
// warning for the first rule that matches, or ("", false) when none do.
// The scan runs against the original user text, not the generated reply.
func Scan(userText string) (string, bool) {
	lower := strings.ToLower(userText)
	for _, rule := range Rules {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Warning, true
		}
	}
	return "", false
}

// Prepend attaches a safety warning ahead of a generated reply, separated by
// a paragraph break. The reply is returned unchanged when no rule matches.
func Prepend(userText, reply string) string {
	warning, ok := Scan(userText)
	if !ok {
		return reply
	}
	return "⚠️ **SAFETY WARNING**: " + warning + "\n\n" + reply
}
