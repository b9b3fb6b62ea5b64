package template

// TokenKind discriminates the variants of a parsed template token.
type TokenKind int

const (
	// TokenLiteral is a run of plain text copied into the output verbatim.
	TokenLiteral TokenKind = iota
	// TokenField is a brace-delimited %{NAME} placeholder.
	TokenField
	// TokenTime is a bare strftime conversion such as %Y.
	TokenTime
	// TokenPercent is the doubled marker %%, producing a single '%'.
	TokenPercent
)

// Field identifies the fixed %{NAME} placeholder vocabulary.
type Field int

const (
	// FieldDesc is the user-supplied descriptor string.
	FieldDesc Field = iota
	// FieldUniqSuff is the batch-wide unique suffix of the file name.
	FieldUniqSuff
	// FieldDir is the directory portion including the trailing separator.
	FieldDir
	// FieldName is the base file name including extension.
	FieldName
	// FieldNoText is the base name up to (excluding) the final dot.
	FieldNoText
	// FieldExt is the final dot plus everything after it.
	FieldExt
	// FieldPath is the full original path as given on input.
	FieldPath
	// FieldNum is the sequence counter, zero-padded.
	FieldNum
)

// Token is one element of a parsed template: a literal fragment or a
// placeholder of some kind. Pos is the byte offset of the token within the
// template string, carried for error reporting.
type Token struct {
	Kind    TokenKind
	Pos     int
	Literal string // TokenLiteral: the text fragment
	Field   Field  // TokenField: which placeholder
	Width   int    // FieldNum: 0 = automatic width, otherwise 1..6
	Conv    byte   // TokenTime: the conversion character
}

// Template is an immutable parsed template. The same Template may be
// expanded any number of times with different contexts.
type Template struct {
	src    string
	tokens []Token
}

// String returns the original template string.
func (t *Template) String() string { return t.src }
