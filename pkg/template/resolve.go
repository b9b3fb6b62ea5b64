package template

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	timefmt "github.com/itchyny/timefmt-go"
)

// timeConversions is the set of strftime conversion characters accepted in
// bare % tokens, matching what timefmt-go implements.
const timeConversions = "aAbBcCdDeFgGhHIjklmMnpPrRsStTuUVwWxXyYzZ"

// Context carries the per-file values needed to resolve placeholders. It is
// constructed fresh per file and read-only during expansion.
type Context struct {
	// Path is the file path exactly as given on input. Dir includes the
	// trailing separator (empty for a bare name). Base is the file name
	// with extension; NoText and Ext split Base at its final dot.
	Path   string
	Dir    string
	Base   string
	NoText string
	Ext    string

	// UniqueSuffix is the batch-wide unique suffix for this file.
	UniqueSuffix string
	// Descriptor is the user-supplied %{DESC} value, possibly empty.
	Descriptor string

	// Counter is this file's sequence number. NumWidth is the automatic
	// %{NUM} width shared by the whole run: the digit count of the largest
	// counter value in the batch.
	Counter  int
	NumWidth int

	// Timestamp is the effective time for strftime tokens (mtime or run
	// time). TimeEnabled gates their substitution entirely; when false a
	// bare %X passes through as literal text.
	Timestamp   time.Time
	TimeEnabled bool
}

// Expand resolves every token of t against ctx and concatenates the results
// in order. It is a pure function of its inputs.
func (t *Template) Expand(ctx *Context) (string, error) {
	var b strings.Builder
	for _, tok := range t.tokens {
		s, err := resolve(tok, ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func resolve(tok Token, ctx *Context) (string, error) {
	switch tok.Kind {
	case TokenLiteral:
		return tok.Literal, nil
	case TokenPercent:
		return "%", nil
	case TokenTime:
		if !ctx.TimeEnabled {
			return "%" + string(tok.Conv), nil
		}
		if !strings.ContainsRune(timeConversions, rune(tok.Conv)) {
			return "", &UnknownPlaceholderError{Token: "%" + string(tok.Conv), Pos: tok.Pos}
		}
		return timefmt.Format(ctx.Timestamp, "%"+string(tok.Conv)), nil
	case TokenField:
		return resolveField(tok, ctx)
	}
	return "", nil
}

func resolveField(tok Token, ctx *Context) (string, error) {
	switch tok.Field {
	case FieldDesc:
		return ctx.Descriptor, nil
	case FieldUniqSuff:
		return ctx.UniqueSuffix, nil
	case FieldDir:
		return ctx.Dir, nil
	case FieldName:
		return ctx.Base, nil
	case FieldNoText:
		return ctx.NoText, nil
	case FieldExt:
		return ctx.Ext, nil
	case FieldPath:
		return ctx.Path, nil
	case FieldNum:
		width := tok.Width
		if width == 0 {
			width = ctx.NumWidth
		} else if len(strconv.Itoa(ctx.Counter)) > width {
			return "", &WidthOverflowError{Width: width, Counter: ctx.Counter, Pos: tok.Pos}
		}
		return fmt.Sprintf("%0*d", width, ctx.Counter), nil
	}
	return "", nil
}
