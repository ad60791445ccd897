// Package triage implements the rule-based field extraction chain for
// answering-service triage messages.
package triage

import (
	"regexp"
	"strings"
)

// Noise markers relayed messages carry: the section sign the answering
// service uses as a field separator, doubled dashes, and doubled commas.
var noiseMarkers = []string{"§", "--", ",,"}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize strips noise markers, collapses whitespace runs to single
// spaces, and trims. Removal loops to a fixed point so that stripping one
// marker cannot leave another behind ("-,,-" collapses to ""), which keeps
// Normalize idempotent.
func Normalize(text string) string {
	for {
		next := text
		for _, marker := range noiseMarkers {
			next = strings.ReplaceAll(next, marker, "")
		}
		if next == text {
			break
		}
		text = next
	}
	return collapseWhitespace(text)
}

// collapseWhitespace squeezes whitespace runs left behind by span removal.
func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
