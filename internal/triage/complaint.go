package triage

import (
	"regexp"
	"strings"
)

// Boilerplate the answering service prepends to complaints. Longer phrases
// come first so "PATIENT NAME REDACTED" is consumed before "PATIENT NAME".
var boilerplatePhrases = []string{
	"PATIENT NAME REDACTED",
	"PATIENT NAME",
	"CONCERNS FOR",
	"CONCERN FOR",
	"CALLING ABOUT",
}

// Misspellings and concatenations seen in relayed messages.
var misspellingFixes = []struct{ from, to string }{
	{"MASTITIST", "MASTITIS"},
	{"SEVEREPAIN", "SEVERE PAIN"},
	{"MIGRANE", "MIGRAINE"},
	{"DIARREA", "DIARRHEA"},
	{"NAUSIA", "NAUSEA"},
	{"PREGNAT", "PREGNANT"},
}

var (
	boilerplateRes  []*regexp.Regexp
	misspellingRes  []*regexp.Regexp
	misspellingSubs []string
	commaSpacingRe  = regexp.MustCompile(`\s*,\s*`)
	repeatedCommaRe = regexp.MustCompile(`(?:, )+,? ?`)
)

func init() {
	for _, phrase := range boilerplatePhrases {
		boilerplateRes = append(boilerplateRes, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(phrase)))
	}
	for _, fix := range misspellingFixes {
		misspellingRes = append(misspellingRes, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(fix.from)))
		misspellingSubs = append(misspellingSubs, fix.to)
	}
}

// FinalizeComplaint cleans the residual left after the extractor chain. If
// cleanup yields nothing, the entire raw message is re-normalized and
// sentence-cased instead: a non-empty message never produces an empty
// chief complaint.
func FinalizeComplaint(residual, raw string) string {
	if cleaned := cleanComplaint(residual); cleaned != "" {
		return cleaned
	}
	return sentenceCase(Normalize(raw))
}

func cleanComplaint(text string) string {
	for _, re := range boilerplateRes {
		text = re.ReplaceAllString(text, " ")
	}
	for i, re := range misspellingRes {
		text = re.ReplaceAllString(text, misspellingSubs[i])
	}
	text = commaSpacingRe.ReplaceAllString(text, ", ")
	text = repeatedCommaRe.ReplaceAllString(text, ", ")
	text = collapseWhitespace(text)
	text = strings.Trim(text, " .,;:-")
	return sentenceCase(text)
}

// sentenceCase uppercases the first letter and lowercases the remainder.
func sentenceCase(s string) string {
	return capitalizeFirst(s)
}
