package param

import "strconv"

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindInt is a value read from an integer literal.
	KindInt Kind = iota
	// KindFloat is a value read from a floating-point literal.
	KindFloat
	// KindString is any other token, and every quoted literal.
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

// Value is a single typed scalar produced from one token or quoted
// literal. The variant is decided once, at construction; accessors
// switch on it instead of re-deriving the kind from text. Values are
// immutable.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// newValue classifies a bare token: an integer literal (optional sign,
// digits only) yields KindInt, anything that parses as a float yields
// KindFloat, everything else is text.
func newValue(tok string) Value {
	if isIntLiteral(tok) {
		if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
			return Value{kind: KindInt, i: i}
		}
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return Value{kind: KindFloat, f: f}
	}
	return Value{kind: KindString, s: tok}
}

// newStringValue wraps a quoted literal. Quoting forces KindString no
// matter what the text looks like.
func newStringValue(text string) Value {
	return Value{kind: KindString, s: text}
}

// isIntLiteral reports whether tok is an optional sign followed by one
// or more digits and nothing else.
func isIntLiteral(tok string) bool {
	if tok != "" && (tok[0] == '+' || tok[0] == '-') {
		tok = tok[1:]
	}
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// AsInt returns the integer value. It reports false for any other
// variant, including KindFloat; narrowing is never implicit.
func (v Value) AsInt() (int64, bool) {
	if v.kind == KindInt {
		return v.i, true
	}
	return 0, false
}

// AsFloat returns the floating-point value. Integer values widen.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

// Text returns the value in the form Write emits: the exact text for
// strings, the canonical literal for numeric kinds. A float whose
// shortest representation would scan as an integer keeps a ".0" suffix
// so that re-parsing reproduces the kind.
func (v Value) Text() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		s := strconv.FormatFloat(v.f, 'g', -1, 64)
		if isIntLiteral(s) {
			s += ".0"
		}
		return s
	default:
		return v.s
	}
}
