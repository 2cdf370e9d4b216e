// Package param implements the parameter-file language used by the
// simulation drivers and the typed store built from it.
//
// A parameter file is a sequence of entries, one `name value` pair per
// entry. A value is either a single bare token, a quoted literal (which
// may contain spaces), or a brace-delimited rectangular array of such
// scalars nested up to sixteen levels deep. Lines whose first
// non-whitespace character is '#' are comments. Brace groups may span
// physical lines; everything else is line-bound.
//
// Parsing consumes the whole file up front and enforces the shape
// invariants there: sibling groups at the same depth must have equal
// element counts, names must be unique, and a field's flat value list
// always fills its declared dimensions exactly. Queries afterwards never
// re-validate shape; they only match the requested name, arity and kind.
package param
