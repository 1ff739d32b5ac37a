package quiz

import (
	"strconv"
	"strings"
)

// ParseUserAnswer interprets a raw submitted answer. It returns the
// option index only when the value parses as an integer within
// [0, numOptions); anything else — absent, non-numeric, out of range —
// comes back nil. Client input is untrusted and a malformed answer is
// never an error, just an unanswered question.
func ParseUserAnswer(raw string, numOptions int) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	if n < 0 || n >= numOptions {
		return nil
	}
	return &n
}
