package template

import "fmt"

// SyntaxError reports a malformed template: an unterminated marker or a bad
// NUM width specifier.
type SyntaxError struct {
	Template string
	Pos      int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template syntax error at offset %d: %s", e.Pos, e.Msg)
}

// UnknownPlaceholderError reports a placeholder outside the supported
// vocabulary. For bare % tokens this includes conversion characters that
// are not valid strftime conversions.
type UnknownPlaceholderError struct {
	Token string
	Pos   int
}

func (e *UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("unknown placeholder %s at offset %d", e.Token, e.Pos)
}

// WidthOverflowError reports a counter value too wide for a fixed-width
// NUM placeholder.
type WidthOverflowError struct {
	Width   int
	Counter int
	Pos     int
}

func (e *WidthOverflowError) Error() string {
	return fmt.Sprintf("counter value %d does not fit in %d digit(s) at offset %d", e.Counter, e.Width, e.Pos)
}
