package template

import (
	"strings"
)

// fieldNames maps the fixed %{NAME} vocabulary to field kinds. The
// fixed-width NUM1..NUM6 forms are handled in parseField.
var fieldNames = map[string]Field{
	"DESC":     FieldDesc,
	"UNIQSUFF": FieldUniqSuff,
	"DIR":      FieldDir,
	"NAME":     FieldName,
	"NOTEXT":   FieldNoText,
	"EXT":      FieldExt,
	"PATH":     FieldPath,
	"NUM":      FieldNum,
}

// Parse scans src into a Template in a single left-to-right pass.
// Placeholder names are case-sensitive. Parse fails on an unterminated %{
// placeholder, a trailing bare %, an unknown %{NAME}, or a NUM width
// outside 1..6. Bare %X tokens are accepted lexically; whether X is a valid
// strftime conversion is decided at expansion time, where the date/time
// enablement is known.
func Parse(src string) (*Template, error) {
	t := &Template{src: src}

	var lit strings.Builder
	litPos := 0
	flush := func() {
		if lit.Len() > 0 {
			t.tokens = append(t.tokens, Token{Kind: TokenLiteral, Pos: litPos, Literal: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(src) {
		c := src[i]
		if c != '%' {
			if lit.Len() == 0 {
				litPos = i
			}
			lit.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(src) {
			return nil, &SyntaxError{Template: src, Pos: i, Msg: "unterminated % marker"}
		}
		switch src[i+1] {
		case '%':
			flush()
			t.tokens = append(t.tokens, Token{Kind: TokenPercent, Pos: i})
			i += 2
		case '{':
			end := strings.IndexByte(src[i+2:], '}')
			if end < 0 {
				return nil, &SyntaxError{Template: src, Pos: i, Msg: "unterminated %{ placeholder"}
			}
			tok, err := parseField(src, i, src[i+2:i+2+end])
			if err != nil {
				return nil, err
			}
			flush()
			t.tokens = append(t.tokens, tok)
			i += 2 + end + 1
		default:
			flush()
			t.tokens = append(t.tokens, Token{Kind: TokenTime, Pos: i, Conv: src[i+1]})
			i += 2
		}
	}
	flush()
	return t, nil
}

// parseField maps a %{NAME} placeholder name to a field token.
func parseField(src string, pos int, name string) (Token, error) {
	if f, ok := fieldNames[name]; ok {
		return Token{Kind: TokenField, Pos: pos, Field: f}, nil
	}
	if len(name) == 4 && strings.HasPrefix(name, "NUM") && name[3] >= '0' && name[3] <= '9' {
		w := int(name[3] - '0')
		if w < 1 || w > 6 {
			return Token{}, &SyntaxError{Template: src, Pos: pos, Msg: "NUM width must be between 1 and 6"}
		}
		return Token{Kind: TokenField, Pos: pos, Field: FieldNum, Width: w}, nil
	}
	return Token{}, &UnknownPlaceholderError{Token: "%{" + name + "}", Pos: pos}
}
