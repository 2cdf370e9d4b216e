package param

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reparse round-trips a store through Dump and the parser.
func reparse(t *testing.T, s *Store) *Store {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, s.Dump(&buf))
	out, err := Parse(context.Background(), strings.NewReader(buf.String()), "dump.par")
	require.NoError(t, err, "dump output must re-parse:\n%s", buf.String())
	return out
}

// requireEquivalent asserts the round-trip law: same names, same
// shapes, same flattened values with kind and text preserved.
func requireEquivalent(t *testing.T, want, got *Store) {
	t.Helper()
	require.Len(t, got.Fields(), len(want.Fields()))
	for i := range want.Fields() {
		wf := &want.Fields()[i]
		gf := &got.Fields()[i]
		assert.Equal(t, wf.name, gf.name)
		assert.Equal(t, wf.dims, gf.dims)
		require.Len(t, gf.values, len(wf.values), "field %q", wf.name)
		for j := range wf.values {
			assert.Equal(t, wf.values[j].Kind(), gf.values[j].Kind(), "field %q value %d", wf.name, j)
			assert.Equal(t, wf.values[j].Text(), gf.values[j].Text(), "field %q value %d", wf.name, j)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	s := mustParse(t, sampleFile)
	requireEquivalent(t, s, reparse(t, s))
}

func TestRoundTripPreservesAwkwardStrings(t *testing.T) {
	src := `empty ""
spaced "two words"
numericString "128"
floatString "0.5"
braced "{not an array}"
quoted "say \"hi\""
slashed "a\\b"
mixed { 1 0.5 "x y" plain }
`
	s := mustParse(t, src)
	requireEquivalent(t, s, reparse(t, s))
}

func TestRoundTripPatchedValues(t *testing.T) {
	// Values injected through ChangeVariableValue must round-trip like
	// parsed ones, including a carriage return, which forces requoting.
	s := mustParse(t, "saveDirectory out/run\nlabel x\n")
	require.NoError(t, s.ChangeVariableValue("saveDirectory", "out/run-3"))
	require.NoError(t, s.ChangeVariableValue("label", "a\rb"))

	r := reparse(t, s)
	requireEquivalent(t, s, r)

	got, err := r.GetString("label")
	require.NoError(t, err)
	assert.Equal(t, "a\rb", got)
}

func TestRoundTripFloatCanonicalForm(t *testing.T) {
	s := mustParse(t, "a 1.5e3\nb 0.1\nc -2.5\n")
	r := reparse(t, s)

	for _, name := range []string{"a", "b", "c"} {
		want, err := s.GetFloat(name)
		require.NoError(t, err)
		got, err := r.GetFloat(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, "field %q", name)
	}
}

func TestRoundTripIsStable(t *testing.T) {
	// A second dump of the re-parsed store must be byte-identical.
	s := mustParse(t, sampleFile)

	var first, second bytes.Buffer
	require.NoError(t, s.Dump(&first))
	require.NoError(t, reparse(t, s).Dump(&second))
	assert.Equal(t, first.String(), second.String())
}

func TestWriteSingleField(t *testing.T) {
	s := mustParse(t, "size 128\n")
	var buf bytes.Buffer
	require.NoError(t, s.Dump(&buf))
	assert.Equal(t, "size 128\n", buf.String())
}

func TestWriteNestedField(t *testing.T) {
	s := mustParse(t, "mat { {1 2} {3 4} }\n")
	var buf bytes.Buffer
	require.NoError(t, s.Dump(&buf))
	assert.Equal(t, "mat { { 1 2 } { 3 4 } }\n", buf.String())
}

func TestWriteRequotesStrings(t *testing.T) {
	s := mustParse(t, `name "hello world"`+"\n")
	var buf bytes.Buffer
	require.NoError(t, s.Dump(&buf))
	assert.Equal(t, "name \"hello world\"\n", buf.String())
}

func TestDumpPreservesInsertionOrder(t *testing.T) {
	s := mustParse(t, "b 1\na 2\nc 3\n")
	var buf bytes.Buffer
	require.NoError(t, s.Dump(&buf))
	assert.Equal(t, "b 1\na 2\nc 3\n", buf.String())
}
