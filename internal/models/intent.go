// ABOUTME: Intent enum and the two-tier confidence scheme for routing
// ABOUTME: Defines the 3 agent categories a turn can be classified into
package models

import "strings"

// Intent is the coarse category assigned to a turn
type Intent string

const (
	// IntentSpecs - technical documentation and specification questions
	IntentSpecs Intent = "specs"

	// IntentMaintenance - scheduling, service history, pricing requests
	IntentMaintenance Intent = "maintenance"

	// IntentTroubleshoot - diagnostic and problem-solving queries
	IntentTroubleshoot Intent = "troubleshoot"
)

// Classifier label strings as the completion model is asked to emit them
const (
	LabelSpecs        = "SPECS"
	LabelMaintenance  = "MAINTENANCE"
	LabelTroubleshoot = "TROUBLESHOOT"
)

// The classifier produces exactly two confidence values: a recognized label
// scores ConfidenceRecognized, anything else falls back to specs with
// ConfidenceFallback. No other confidence-producing path exists.
const (
	ConfidenceRecognized = 0.85
	ConfidenceFallback   = 0.50
)

// IsValid reports whether the intent is one of the three known categories
func (i Intent) IsValid() bool {
	switch i {
	case IntentSpecs, IntentMaintenance, IntentTroubleshoot:
		return true
	}
	return false
}

// IntentFromLabel maps a raw classifier reply to an intent. The match is
// case-insensitive and tolerant of surrounding whitespace. Unrecognized
// replies map to specs with ok=false so the caller can apply the fallback
// confidence.
func IntentFromLabel(raw string) (Intent, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case LabelSpecs:
		return IntentSpecs, true
	case LabelMaintenance:
		return IntentMaintenance, true
	case LabelTroubleshoot:
		return IntentTroubleshoot, true
	}
	return IntentSpecs, false
}
