package types

// TextSpan is a half-open [Start, End) range of rune offsets into the essay text.
type TextSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}
