package param

import "github.com/zclconf/go-cty/cty"

// CtyValue converts the scalar into its cty equivalent.
func (v Value) CtyValue() cty.Value {
	switch v.kind {
	case KindInt:
		return cty.NumberIntVal(v.i)
	case KindFloat:
		return cty.NumberFloatVal(v.f)
	default:
		return cty.StringVal(v.s)
	}
}

// CtyValue converts the field into a cty value: a bare scalar for
// single fields, nested tuples otherwise. Tuples rather than lists,
// since one field may mix integer, float and string leaves.
func (f *Field) CtyValue() cty.Value {
	if f.IsSingle() {
		return f.values[0].CtyValue()
	}
	count := 0
	return f.ctyGroup(0, &count)
}

func (f *Field) ctyGroup(depth int, count *int) cty.Value {
	if f.dims[depth] == 0 {
		return cty.EmptyTupleVal
	}
	elems := make([]cty.Value, f.dims[depth])
	for j := range elems {
		if depth == len(f.dims)-1 {
			elems[j] = f.values[*count].CtyValue()
			*count++
		} else {
			elems[j] = f.ctyGroup(depth+1, count)
		}
	}
	return cty.TupleVal(elems)
}

// CtyObject exposes the whole store as a cty object keyed by field
// name, for collaborators that evaluate expressions over parameters.
func (s *Store) CtyObject() cty.Value {
	if len(s.fields) == 0 {
		return cty.EmptyObjectVal
	}
	attrs := make(map[string]cty.Value, len(s.fields))
	for i := range s.fields {
		attrs[s.fields[i].name] = s.fields[i].CtyValue()
	}
	return cty.ObjectVal(attrs)
}
