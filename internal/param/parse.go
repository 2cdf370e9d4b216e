package param

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
)

// reader is a byte-level scanner with position tracking, so that every
// diagnostic can carry an exact source range.
type reader struct {
	br       *bufio.Reader
	filename string
	pos      hcl.Pos // position of the next unread byte
}

func newReader(r io.Reader, filename string) *reader {
	return &reader{
		br:       bufio.NewReader(r),
		filename: filename,
		pos:      hcl.Pos{Line: 1, Column: 1},
	}
}

// next consumes one byte; ok is false at end of input.
func (r *reader) next() (byte, bool) {
	b, err := r.br.ReadByte()
	if err != nil {
		return 0, false
	}
	r.pos.Byte++
	if b == '\n' {
		r.pos.Line++
		r.pos.Column = 1
	} else {
		r.pos.Column++
	}
	return b, true
}

// peek returns the next byte without consuming it.
func (r *reader) peek() (byte, bool) {
	b, err := r.br.Peek(1)
	if err != nil {
		return 0, false
	}
	return b[0], true
}

// isBlank matches the whitespace that separates tokens within a line.
func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}

// skipBlank consumes spaces and tabs but stops at newlines, which the
// grammar treats as entry terminators outside brace groups.
func (r *reader) skipBlank() {
	for {
		b, ok := r.peek()
		if !ok || !isBlank(b) {
			return
		}
		r.next()
	}
}

// skipSpace consumes all whitespace including newlines.
func (r *reader) skipSpace() {
	for {
		b, ok := r.peek()
		if !ok || (!isBlank(b) && b != '\n') {
			return
		}
		r.next()
	}
}

// skipLine discards everything up to and including the next newline.
func (r *reader) skipLine() {
	for {
		b, ok := r.next()
		if !ok || b == '\n' {
			return
		}
	}
}

// readToken consumes a bare token: everything up to the next
// whitespace or brace character.
func (r *reader) readToken() string {
	var tok []byte
	for {
		b, ok := r.peek()
		if !ok || isBlank(b) || b == '\n' || b == '{' || b == '}' {
			return string(tok)
		}
		r.next()
		tok = append(tok, b)
	}
}

type parser struct {
	r      *reader
	fields []Field
}

// parseStream consumes the whole stream and returns one Field per
// top-level entry, in file order. The first error aborts the parse;
// there are no partial results.
func parseStream(r io.Reader, filename string) ([]Field, hcl.Diagnostics) {
	p := &parser{r: newReader(r, filename)}
	for {
		// Skip blank lines and comment lines between entries.
		p.r.skipBlank()
		b, ok := p.r.peek()
		if !ok {
			return p.fields, nil
		}
		if b == '\n' {
			p.r.next()
			continue
		}
		if b == '#' {
			p.r.skipLine()
			continue
		}
		if diags := p.parseEntry(); diags.HasErrors() {
			return nil, diags
		}
	}
}

// parseEntry reads one "<name> <value>" pair and appends it to the
// field list.
func (p *parser) parseEntry() hcl.Diagnostics {
	start := p.r.pos
	name := p.r.readToken()
	if name == "" {
		// The line starts with a brace; a name can never be empty.
		return p.errf(start, "missing parameter name",
			"expected a parameter name, found %q", string(mustPeek(p.r)))
	}
	for i := range p.fields {
		if p.fields[i].name == name {
			return p.errf(start, "duplicate parameter",
				"parameter %q is already defined", name)
		}
	}
	f := Field{name: name}

	p.r.skipBlank()
	b, ok := p.r.peek()
	if !ok || b == '\n' {
		return p.errf(start, "missing value",
			"unexpected end of line while parsing parameter %q", name)
	}

	switch b {
	case '{':
		if diags := p.readNested(&f, name); diags.HasErrors() {
			return diags
		}
	case '"':
		text, diags := p.readQuoted(name)
		if diags.HasErrors() {
			return diags
		}
		f.append(newStringValue(text))
	default:
		f.append(newValue(p.r.readToken()))
	}

	// Only trailing whitespace may follow the value on its line.
	p.r.skipBlank()
	if b, ok := p.r.peek(); ok && b != '\n' {
		return p.errf(p.r.pos, "trailing characters",
			"unexpected data after the value of parameter %q", name)
	}
	p.fields = append(p.fields, f)
	return nil
}

// readQuoted consumes a double-quoted literal. The literal may contain
// whitespace but must close before the end of its line; backslash
// escapes a quote or another backslash.
func (p *parser) readQuoted(name string) (string, hcl.Diagnostics) {
	start := p.r.pos
	p.r.next() // opening quote
	var text []byte
	for {
		b, ok := p.r.peek()
		if !ok || b == '\n' {
			return "", p.errf(start, "unterminated quoted literal",
				"unexpected end of line inside the quoted value of parameter %q", name)
		}
		p.r.next()
		switch b {
		case '"':
			return string(text), nil
		case '\\':
			if nb, ok := p.r.peek(); ok && (nb == '"' || nb == '\\') {
				p.r.next()
				text = append(text, nb)
				continue
			}
			text = append(text, b)
		default:
			text = append(text, b)
		}
	}
}

// readNested parses a brace-delimited rectangular array in one pass
// with per-depth element counts. Each closing brace is checked against
// the size recorded by the previous sibling group at the same depth,
// and the closed group then counts as one element of its parent. The
// depth at which the first group closes fixes the array's
// dimensionality; no group may open beyond it.
func (p *parser) readNested(f *Field, name string) hcl.Diagnostics {
	start := p.r.pos
	var dimSizes [maxDepth + 1]int
	var prevDimSizes [maxDepth + 1]int
	for i := range prevDimSizes {
		prevDimSizes[i] = -1
	}

	cd := 0
	maxd := -1
	for {
		p.r.skipSpace() // inside an array, newlines separate like blanks
		b, ok := p.r.peek()
		if !ok {
			return p.errf(start, "unterminated array",
				"missing closing '}' in the value of parameter %q", name)
		}
		switch b {
		case '{':
			openPos := p.r.pos
			p.r.next()
			if maxd > 0 && cd == maxd {
				return p.errf(openPos, "array too deep",
					"parameter %q opens a group below the depth at which its first group closed", name)
			}
			if cd == maxDepth {
				return p.errf(openPos, "array too deep",
					"parameter %q exceeds the maximum nesting depth of %d", name, maxDepth)
			}
			cd++
			dimSizes[cd] = 0
		case '}':
			closePos := p.r.pos
			p.r.next()
			if maxd < 0 {
				maxd = cd
			}
			if dimSizes[cd] != 0 {
				if prevDimSizes[cd] == -1 {
					prevDimSizes[cd] = dimSizes[cd]
				} else if dimSizes[cd] != prevDimSizes[cd] {
					return p.errf(closePos, "ragged array",
						"parameter %q: group at depth %d has %d element(s), its previous sibling had %d",
						name, cd, dimSizes[cd], prevDimSizes[cd])
				}
			}
			cd--
			dimSizes[cd]++
			if cd == 0 {
				f.dims = make([]int, maxd)
				n := 1
				for i := 0; i < maxd; i++ {
					f.dims[i] = dimSizes[i+1]
					n *= f.dims[i]
				}
				if n != len(f.values) {
					return p.errf(closePos, "ragged array",
						"parameter %q: %d value(s) do not fill a rectangular array of shape %v",
						name, len(f.values), f.dims)
				}
				return nil
			}
		case '"':
			text, diags := p.readQuoted(name)
			if diags.HasErrors() {
				return diags
			}
			f.append(newStringValue(text))
			dimSizes[cd]++
		default:
			f.append(newValue(p.r.readToken()))
			dimSizes[cd]++
		}
	}
}

// mustPeek is only called when a peek already succeeded this line.
func mustPeek(r *reader) byte {
	b, _ := r.peek()
	return b
}

// errf builds a single-error diagnostic anchored at the given position.
func (p *parser) errf(at hcl.Pos, summary, format string, args ...any) hcl.Diagnostics {
	return hcl.Diagnostics{&hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
		Subject:  &hcl.Range{Filename: p.r.filename, Start: at, End: p.r.pos},
	}}
}
