package quote

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-dynstr/dynstr"
)

// TestAppendRepr verifies the escaping rules: printable ASCII passes
// through, known controls get their mnemonic escapes, the rest turns into
// \xHH, and the result is wrapped in double quotes.
func TestAppendRepr(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		exp  string
	}{
		{"plain", []byte("hello"), `"hello"`},
		{"quote and backslash", []byte(`a"b\c`), `"a\"b\\c"`},
		{"controls", []byte("a\nb\rc\td\ae\bf"), `"a\nb\rc\td\ae\bf"`},
		{"non printable", []byte{0x00, 0x1f, 0xff}, `"\x00\x1f\xff"`},
		{"empty", nil, `""`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require := require.New(t)

			b := dynstr.Empty()
			defer b.Release()
			require.NoError(AppendRepr(b, tc.in))
			require.Equal(tc.exp, b.String())
		})
	}
}

// TestSplitArgs covers the argument-line grammar: bare words, double quotes
// with escapes, single quotes, and the malformed-input error path.
func TestSplitArgs(t *testing.T) {
	// toStrings flattens a token list for easy comparison, then releases it.
	toStrings := func(tokens []*dynstr.Buffer) []string {
		out := make([]string, len(tokens))
		for i, tok := range tokens {
			out[i] = tok.String()
		}
		ReleaseAll(tokens)
		return out
	}

	t.Run("Valid lines", func(t *testing.T) {
		cases := []struct {
			name string
			line string
			exp  []string
		}{
			{"bare words", "hello world", []string{"hello", "world"}},
			{"extra whitespace", "  a \t b  ", []string{"a", "b"}},
			{"double quotes", `set key "some value"`, []string{"set", "key", "some value"}},
			{"mnemonic escapes", `"a\nb\tc"`, []string{"a\nb\tc"}},
			{"hex escapes", `"\x41\x42"`, []string{"AB"}},
			{"embedded zero byte", `"\x00"`, []string{"\x00"}},
			{"single quotes keep escapes literal", `'a\nb'`, []string{`a\nb`}},
			{"escaped single quote", `'don\'t'`, []string{"don't"}},
			{"adjacent quoted and bare", `"a" b 'c'`, []string{"a", "b", "c"}},
			{"empty line", "", []string{}},
			{"whitespace only", "   \t ", []string{}},
			{"empty quoted token", `""`, []string{""}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				require := require.New(t)

				tokens, err := SplitArgs(tc.line)
				require.NoError(err)
				require.Equal(tc.exp, toStrings(tokens))
			})
		}
	})

	t.Run("Malformed lines", func(t *testing.T) {
		for _, line := range []string{
			`"unterminated`,
			`'unterminated`,
			`"no separator"after`,
			`'no separator'after`,
			`trailing "open`,
		} {
			tokens, err := SplitArgs(line)
			require.Equal(t, ErrUnbalancedQuotes, err, "line %q must be rejected", line)
			require.Nil(t, tokens, "no partial result may leak for %q", line)
		}
	})

	t.Run("Round trip through AppendRepr", func(t *testing.T) {
		require := require.New(t)

		// Anything AppendRepr produces must parse back to the same payload.
		payload := []byte("tricky \"value\"\twith\nnoise \x00\x1b\xfe")
		quoted := dynstr.Empty()
		defer quoted.Release()
		require.NoError(AppendRepr(quoted, payload))

		tokens, err := SplitArgs(quoted.String())
		require.NoError(err)
		require.Len(tokens, 1)
		require.Equal(payload, tokens[0].Bytes())
		ReleaseAll(tokens)
	})
}

// TestSplit covers separator splitting, including the degenerate cases.
func TestSplit(t *testing.T) {
	split := func(p, sep string) []string {
		tokens, err := Split([]byte(p), []byte(sep))
		require.NoError(t, err)
		out := make([]string, len(tokens))
		for i, tok := range tokens {
			out[i] = tok.String()
		}
		ReleaseAll(tokens)
		return out
	}

	require := require.New(t)
	require.Equal([]string{"a", "b", "c"}, split("a b c", " "))
	require.Equal([]string{"", "a", "", "b", ""}, split("-a--b-", "-"))
	require.Equal([]string{"a", "b"}, split("a::b", "::"))
	require.Equal([]string{"abc"}, split("abc", "-"))
	require.Equal([]string{""}, split("", "-"))

	_, err := Split([]byte("abc"), nil)
	require.Equal(ErrEmptySeparator, err)
}

// TestJoin checks the inverse of Split.
func TestJoin(t *testing.T) {
	require := require.New(t)

	joined, err := Join([]string{"a", "b", "c"}, ", ")
	require.NoError(err)
	require.Equal("a, b, c", joined.String())
	joined.Release()

	empty, err := Join(nil, ",")
	require.NoError(err)
	require.Equal(0, empty.Len())
	empty.Release()

	single, err := Join([]string{"only"}, ",")
	require.NoError(err)
	require.Equal("only", single.String())
	single.Release()
}
