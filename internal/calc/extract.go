package calc

import (
	"regexp"
	"strings"
)

// Trigger phrases that mark a chat message as a calculation request. Each
// captures the longest run of expression characters that follows.
var triggerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`calculate\s+([0-9+\-*/().^ ]+)`),
	regexp.MustCompile(`what\s+is\s+([0-9+\-*/().^ ]+)`),
	regexp.MustCompile(`compute\s+([0-9+\-*/().^ ]+)`),
}

// ExtractExpression scans a message for a calculation request and returns
// the candidate expression. Matching is case-insensitive. The candidate may
// still fail to parse; a trigger followed by spaces alone counts as a
// (doomed) request rather than ordinary chat.
func ExtractExpression(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, re := range triggerPatterns {
		if m := re.FindStringSubmatch(lower); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}
