package prescription

import "strings"

// adminTimePhrases is the fixed detection list. Output order follows this
// list, not the position of the phrase in the scanned text.
var adminTimePhrases = []string{
	"at bedtime",
	"before meals",
	"after meals",
	"with food",
	"on an empty stomach",
	"in the morning",
	"in the evening",
	"every morning",
	"every evening",
	"once daily",
	"twice daily",
	"three times daily",
	"four times daily",
	"as needed",
	"immediately",
}

// DetectAdminTimes scans text for known administration-time phrases.
// Matching is case-insensitive substring containment. Each phrase appears
// at most once in the result, in definition order. Never returns nil.
func DetectAdminTimes(text string) []string {
	found := []string{}
	if text == "" {
		return found
	}

	lowered := strings.ToLower(text)
	seen := make(map[string]bool, len(adminTimePhrases))

	for _, phrase := range adminTimePhrases {
		if seen[phrase] {
			continue
		}
		if strings.Contains(lowered, phrase) {
			found = append(found, phrase)
			seen[phrase] = true
		}
	}

	return found
}
