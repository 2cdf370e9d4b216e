package param

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vk/parstore/internal/ctxlog"
)

// ErrNoMatch is wrapped by every failed typed lookup. A missing name
// and a present-but-mismatched field both report it; callers that need
// to treat absence specially go through HasVariable or the OrDefault
// variants instead of inspecting the error.
var ErrNoMatch = errors.New("no match found")

// Store is the ordered collection of fields loaded from one parameter
// file. It is built in one parse pass and is read-only afterwards,
// except for ChangeVariableValue; concurrent readers need no locking.
// Use Copy for an independently patchable snapshot.
type Store struct {
	fields   []Field
	fileName string
	echo     bool
	echoW    io.Writer
}

// Parse builds a Store by consuming the whole stream. filename appears
// in diagnostics only; nothing is read from disk.
func Parse(ctx context.Context, r io.Reader, filename string) (*Store, error) {
	fields, diags := parseStream(r, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	ctxlog.FromContext(ctx).Debug("Parameter file parsed.", "file", filename, "fields", len(fields))
	return &Store{fields: fields, fileName: filename, echoW: os.Stdout}, nil
}

// NewFromFile opens the parameter file, consumes it fully, and closes
// it before returning; no file handle is retained.
func NewFromFile(ctx context.Context, path string) (*Store, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open parameter file %q: %w", path, err)
	}
	defer fh.Close()
	return Parse(ctx, fh, path)
}

// NewFromArgs builds a Store from a process argument list shaped like
// os.Args: args[0] is the program name and args[1], when present, the
// parameter file path. A missing path falls back to defaultPath; more
// than one argument is a usage error.
func NewFromArgs(ctx context.Context, args []string, defaultPath string) (*Store, error) {
	if len(args) > 2 {
		return nil, fmt.Errorf("usage: %s <parameterfile>", args[0])
	}
	path := defaultPath
	if len(args) == 2 {
		path = args[1]
	}
	ctxlog.FromContext(ctx).Info("Reading parameters.", "file", path)
	return NewFromFile(ctx, path)
}

// Copy returns a deep copy, so that ChangeVariableValue applied to one
// store never shows through the other.
func (s *Store) Copy() *Store {
	c := &Store{fileName: s.fileName, echo: s.echo, echoW: s.echoW,
		fields: make([]Field, len(s.fields))}
	for i := range s.fields {
		c.fields[i] = s.fields[i].clone()
	}
	return c
}

// FileName returns the path the store was parsed from.
func (s *Store) FileName() string { return s.fileName }

// Fields returns the stored fields in insertion order. The slice is
// shared with the store and must be treated as read-only.
func (s *Store) Fields() []Field { return s.fields }

// SetEcho toggles tracing of successful lookups.
func (s *Store) SetEcho(on bool) { s.echo = on }

// SetEchoWriter redirects the "name = value" echo trace.
func (s *Store) SetEchoWriter(w io.Writer) { s.echoW = w }

// find returns the first field with the given name, or nil.
func (s *Store) find(name string) *Field {
	for i := range s.fields {
		if s.fields[i].name == name {
			return &s.fields[i]
		}
	}
	return nil
}

// echoValue emits the trace line for a successful lookup. Echo is
// observational only and never changes what a query returns.
func (s *Store) echoValue(name, text string) {
	if s.echo && s.echoW != nil {
		fmt.Fprintf(s.echoW, "%s = %s\n", name, text)
	}
}

// scalar fetches one value, requiring the field's dimensionality to
// equal the index arity.
func (s *Store) scalar(name, want string, indices []int) (Value, error) {
	f := s.find(name)
	if f == nil || f.NumDim() != len(indices) {
		return Value{}, fmt.Errorf("%w for %s %q", ErrNoMatch, want, name)
	}
	return f.At(indices...)
}

// GetInt returns an integer parameter. Zero indices address a single
// field, one index a 1-D field, and so on; the arity must equal the
// field's dimensionality.
func (s *Store) GetInt(name string, indices ...int) (int64, error) {
	v, err := s.scalar(name, "integer", indices)
	if err != nil {
		return 0, err
	}
	i, ok := v.AsInt()
	if !ok {
		return 0, fmt.Errorf("%w for integer %q", ErrNoMatch, name)
	}
	s.echoValue(name, v.Text())
	return i, nil
}

// GetFloat returns a floating-point parameter. Integer values widen;
// the reverse never holds.
func (s *Store) GetFloat(name string, indices ...int) (float64, error) {
	v, err := s.scalar(name, "float", indices)
	if err != nil {
		return 0, err
	}
	f, ok := v.AsFloat()
	if !ok {
		return 0, fmt.Errorf("%w for float %q", ErrNoMatch, name)
	}
	s.echoValue(name, v.Text())
	return f, nil
}

// GetString returns a parameter as text. Any kind qualifies; numeric
// values come back in their canonical literal form.
func (s *Store) GetString(name string, indices ...int) (string, error) {
	v, err := s.scalar(name, "string", indices)
	if err != nil {
		return "", err
	}
	s.echoValue(name, v.Text())
	return v.Text(), nil
}

// GetIntOrDefault returns def when the name is absent entirely.
// Existence is decided by HasVariable, so a present field of the wrong
// shape or kind still fails.
func (s *Store) GetIntOrDefault(name string, def int64) (int64, error) {
	if !s.HasVariable(name) {
		return def, nil
	}
	return s.GetInt(name)
}

// GetFloatOrDefault returns def when the name is absent entirely.
func (s *Store) GetFloatOrDefault(name string, def float64) (float64, error) {
	if !s.HasVariable(name) {
		return def, nil
	}
	return s.GetFloat(name)
}

// GetStringOrDefault returns def when the name is absent entirely.
func (s *Store) GetStringOrDefault(name, def string) (string, error) {
	if !s.HasVariable(name) {
		return def, nil
	}
	return s.GetString(name)
}

// HasVariable reports whether any field has the given name, regardless
// of its shape or kind.
func (s *Store) HasVariable(name string) bool { return s.find(name) != nil }

// CheckVariable is HasVariable plus a warning when the parameter is
// missing, naming the file that was supposed to contain it.
func (s *Store) CheckVariable(ctx context.Context, name string) bool {
	if s.HasVariable(name) {
		return true
	}
	ctxlog.FromContext(ctx).Warn("Expected parameter is missing.",
		"file", s.fileName, "name", name)
	return false
}

// CheckAndGetBool reports whether the named parameter exists, is a
// single integer field, and equals 1. A present field of another shape
// or kind is an error, not false.
func (s *Store) CheckAndGetBool(name string) (bool, error) {
	if !s.HasVariable(name) {
		return false, nil
	}
	i, err := s.GetInt(name)
	if err != nil {
		return false, err
	}
	return i == 1, nil
}

// GetIntVec reads a full 1-D integer field, sized to the field's
// declared dimension.
func (s *Store) GetIntVec(name string) ([]int64, error) {
	f := s.find(name)
	if f == nil || f.NumDim() != 1 {
		return nil, fmt.Errorf("%w for integer vector %q", ErrNoMatch, name)
	}
	out := make([]int64, f.dims[0])
	for i := range out {
		n, err := s.GetInt(name, i)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// NumDim returns the dimensionality of the named field.
func (s *Store) NumDim(name string) (int, error) {
	f := s.find(name)
	if f == nil {
		return 0, fmt.Errorf("%w for %q", ErrNoMatch, name)
	}
	return f.NumDim(), nil
}

// DimSize returns the size of dimension i of the named field.
func (s *Store) DimSize(name string, i int) (int, error) {
	f := s.find(name)
	if f == nil {
		return 0, fmt.Errorf("%w for %q", ErrNoMatch, name)
	}
	return f.DimSize(i)
}

// Dump serializes every field in insertion order, producing text the
// parser re-consumes into an equivalent store.
func (s *Store) Dump(w io.Writer) error {
	for i := range s.fields {
		if err := s.fields[i].Write(w); err != nil {
			return err
		}
	}
	return nil
}

// DumpToFile writes the Dump output to the given path.
func (s *Store) DumpToFile(path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create dump file %q: %w", path, err)
	}
	if err := s.Dump(fh); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

// ChangeVariableValue replaces the sole value of an existing single
// field. The replacement text is classified like a bare token would
// be; multi-dimensional fields are refused, as is text containing a
// newline, which no form of the grammar could re-read.
func (s *Store) ChangeVariableValue(name, newText string) error {
	f := s.find(name)
	if f == nil {
		return fmt.Errorf("%w for %q", ErrNoMatch, name)
	}
	if !f.IsSingle() {
		return fmt.Errorf("parameter %q is not a single field", name)
	}
	if strings.ContainsRune(newText, '\n') {
		return fmt.Errorf("replacement value for %q may not contain a newline", name)
	}
	f.values[0] = newValue(newText)
	return nil
}
