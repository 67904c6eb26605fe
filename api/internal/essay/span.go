package essay

import (
	"strings"
	"unicode/utf8"

	"essay-feedback/api/internal/essay/types"
)

// ValidateSpan returns span unchanged when 0 <= start <= end <= textLength and
// the empty span {0, 0} otherwise.
func ValidateSpan(span types.TextSpan, textLength int) types.TextSpan {
	if span.Start < 0 || span.End > textLength || span.Start > span.End {
		return types.TextSpan{}
	}
	return span
}

// LocateSpan finds the first case-sensitive occurrence of candidate in source.
// When candidate does not occur the result is {0, min(len(candidate), len(source))},
// which is in bounds but does not point at the candidate text.
func LocateSpan(candidate, source string) types.TextSpan {
	n := utf8.RuneCountInString(candidate)
	if i := strings.Index(source, candidate); i >= 0 {
		start := utf8.RuneCountInString(source[:i])
		return types.TextSpan{Start: start, End: start + n}
	}
	return types.TextSpan{Start: 0, End: min(n, utf8.RuneCountInString(source))}
}
