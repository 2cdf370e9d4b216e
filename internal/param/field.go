package param

import (
	"fmt"
	"io"
)

// maxDepth is the deepest nesting a field's array value may use.
const maxDepth = 16

// Field is one named entry from a parameter file: a rectangular,
// possibly multi-dimensional container of scalar values. dims is nil
// for a single scalar; values is the row-major flattening and holds
// exactly the product of dims elements (one, when single) once parsing
// has finished.
type Field struct {
	name   string
	dims   []int
	values []Value
}

// Name returns the field's key.
func (f *Field) Name() string { return f.name }

// IsSingle reports whether the field holds exactly one scalar with no
// array structure around it.
func (f *Field) IsSingle() bool { return len(f.dims) == 0 }

// NumDim returns the field's dimensionality; 0 means single scalar.
func (f *Field) NumDim() int { return len(f.dims) }

// DimSize returns the declared size of dimension i.
func (f *Field) DimSize(i int) (int, error) {
	if i < 0 || i >= len(f.dims) {
		return 0, fmt.Errorf("field %q: dimension %d out of range [0,%d)", f.name, i, len(f.dims))
	}
	return f.dims[i], nil
}

// At returns the value at the given indices. The number of indices
// must equal NumDim and each must lie inside its dimension; the
// flattened offset is row-major.
func (f *Field) At(indices ...int) (Value, error) {
	if len(indices) != len(f.dims) {
		return Value{}, fmt.Errorf("field %q has %d dimension(s), got %d index(es)", f.name, len(f.dims), len(indices))
	}
	off := 0
	for k, idx := range indices {
		if idx < 0 || idx >= f.dims[k] {
			return Value{}, fmt.Errorf("field %q: index %d out of range [0,%d) in dimension %d", f.name, idx, f.dims[k], k)
		}
		off = off*f.dims[k] + idx
	}
	return f.values[off], nil
}

// append adds one scalar during parsing.
func (f *Field) append(v Value) {
	f.values = append(f.values, v)
}

// clone returns a deep copy. Field carries slices, so plain assignment
// would share backing arrays across stores.
func (f *Field) clone() Field {
	return Field{
		name:   f.name,
		dims:   append([]int(nil), f.dims...),
		values: append([]Value(nil), f.values...),
	}
}

// Write serializes the field as "<name> <value>" using the same brace
// syntax the parser reads, so that a dumped store re-parses into an
// equivalent one.
func (f *Field) Write(w io.Writer) error {
	if _, err := io.WriteString(w, f.name+" "); err != nil {
		return err
	}
	if f.IsSingle() {
		if err := writeScalar(w, f.values[0]); err != nil {
			return err
		}
	} else {
		count := 0
		if err := f.writeGroup(w, 0, &count); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// writeGroup re-emits one brace group at the given depth, recursing
// until the innermost depth where the flat values are consumed in
// row-major order through count.
func (f *Field) writeGroup(w io.Writer, depth int, count *int) error {
	if _, err := io.WriteString(w, "{ "); err != nil {
		return err
	}
	for j := 0; j < f.dims[depth]; j++ {
		if depth == len(f.dims)-1 {
			if err := writeScalar(w, f.values[*count]); err != nil {
				return err
			}
			*count++
		} else {
			if err := f.writeGroup(w, depth+1, count); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}")
	return err
}

// writeScalar emits one value, requoting strings whenever the bare
// form would not scan back to the same kind and text.
func writeScalar(w io.Writer, v Value) error {
	text := v.Text()
	if v.Kind() == KindString && needsQuoting(text) {
		text = quote(text)
	}
	_, err := io.WriteString(w, text)
	return err
}

// needsQuoting reports whether the text, written bare, would either
// fail to scan as one token or scan back with a numeric kind.
func needsQuoting(text string) bool {
	if text == "" {
		return true
	}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\r', '\n', '{', '}', '"', '#':
			return true
		}
	}
	return newValue(text).Kind() != KindString
}

// quote wraps text in double quotes, escaping backslashes and embedded
// quotes the way the scanner unescapes them.
func quote(text string) string {
	out := make([]byte, 0, len(text)+2)
	out = append(out, '"')
	for i := 0; i < len(text); i++ {
		if text[i] == '"' || text[i] == '\\' {
			out = append(out, '\\')
		}
		out = append(out, text[i])
	}
	return string(append(out, '"'))
}
