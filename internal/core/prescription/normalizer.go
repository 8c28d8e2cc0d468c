package prescription

import (
	"regexp"
	"strings"
)

// NormalizationRule maps a prescription shorthand to its full phrase.
// Abbreviations are unique and no expansion is itself an abbreviation,
// so a single pass is idempotent.
type NormalizationRule struct {
	Abbreviation string
	Expansion    string
}

// normalizationRules is applied in definition order. Keep expansions free of
// other abbreviations or a second pass would rewrite them again.
var normalizationRules = []NormalizationRule{
	{"tabs", "tablets"},
	{"tab", "tablet"},
	{"caps", "capsules"},
	{"cap", "capsule"},
	{"po", "by mouth"},
	{"qhs", "at bedtime"},
	{"hs", "at bedtime"},
	{"qd", "once daily"},
	{"od", "once daily"},
	{"bid", "twice daily"},
	{"tid", "three times daily"},
	{"qid", "four times daily"},
	{"qam", "every morning"},
	{"qpm", "every evening"},
	{"prn", "as needed"},
	{"sos", "if needed"},
	{"ac", "before meals"},
	{"pc", "after meals"},
	{"stat", "immediately"},
	{"gtt", "drops"},
	{"inj", "injection"},
	{"syp", "syrup"},
	{"susp", "suspension"},
	{"ung", "ointment"},
}

type compiledRule struct {
	pattern   *regexp.Regexp
	expansion string
}

var compiledRules []compiledRule

var whitespaceRun = regexp.MustCompile(`\s+`)

func init() {
	compiledRules = make([]compiledRule, 0, len(normalizationRules))
	for _, rule := range normalizationRules {
		// \b is safe while every abbreviation is purely alphanumeric;
		// a key containing punctuation would need explicit delimiters
		pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(rule.Abbreviation) + `\b`)
		compiledRules = append(compiledRules, compiledRule{
			pattern:   pattern,
			expansion: rule.Expansion,
		})
	}
}

// Normalize expands medical shorthand in text using the fixed rule table.
// Matching is case-insensitive on whole words only, so "tab" rewrites but
// "stable" does not. Whitespace runs collapse to a single space and the
// result is trimmed. Total on any input; "" returns "".
func Normalize(text string) string {
	for _, rule := range compiledRules {
		text = rule.pattern.ReplaceAllString(text, rule.expansion)
	}
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
