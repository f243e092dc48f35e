package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func join(lines ...string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"trailing-newline", "a\nb\n", []string{"a", "b"}},
		{"no-trailing-newline", "a\nb", []string{"a", "b"}},
		{"blank-lines", "a\n\nb\n", []string{"a", "", "b"}},
		{"single-newline", "\n", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := Split([]byte(tt.in))
			var got []string
			for _, r := range recs {
				got = append(got, string(r))
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestChangeScriptReplacement(t *testing.T) {
	s, err := ChangeScript(join("a", "b", "c"), join("a", "x", "c"), Options{})
	require.NoError(t, err)
	require.Equal(t, []Hunk{{OldPos: 1, OldLines: 1, NewPos: 1, NewLines: 1}}, s.Hunks)
}

func TestChangeScriptInsertOnly(t *testing.T) {
	s, err := ChangeScript(join("a", "c"), join("a", "b", "c"), Options{})
	require.NoError(t, err)
	require.Equal(t, []Hunk{{OldPos: 1, OldLines: 0, NewPos: 1, NewLines: 1}}, s.Hunks)
}

func TestChangeScriptDeleteOnly(t *testing.T) {
	s, err := ChangeScript(join("a", "b", "c"), join("a", "c"), Options{})
	require.NoError(t, err)
	require.Equal(t, []Hunk{{OldPos: 1, OldLines: 1, NewPos: 1, NewLines: 0}}, s.Hunks)
}

func TestChangeScriptIdentical(t *testing.T) {
	in := join("a", "b", "c")
	s, err := ChangeScript(in, in, Options{})
	require.NoError(t, err)
	require.Empty(t, s.Hunks)
}

func TestIgnoreBlankLines(t *testing.T) {
	a := join("a", "b")
	b := join("a", "", "  ", "b")

	s, err := ChangeScript(a, b, Options{IgnoreBlankLines: true})
	require.NoError(t, err)
	require.Len(t, s.Hunks, 1)
	require.True(t, s.Hunks[0].Ignore, "blank-line hunk not marked ignored")

	s, err = ChangeScript(a, b, Options{})
	require.NoError(t, err)
	require.Len(t, s.Hunks, 1)
	require.False(t, s.Hunks[0].Ignore)
}

func TestIgnoreAllSpace(t *testing.T) {
	a := join("a b", "c")
	b := join("ab", "c")

	s, err := ChangeScript(a, b, Options{IgnoreAllSpace: true})
	require.NoError(t, err)
	require.Empty(t, s.Hunks, "whitespace-only difference produced hunks")
}

func TestIgnoreSpaceChange(t *testing.T) {
	s, err := ChangeScript(join("a   b"), join("a b"), Options{IgnoreSpaceChange: true})
	require.NoError(t, err)
	require.Empty(t, s.Hunks)

	s, err = ChangeScript(join("ab"), join("a b"), Options{IgnoreSpaceChange: true})
	require.NoError(t, err)
	require.Len(t, s.Hunks, 1, "non-whitespace difference ignored")
}

// reconstruct applies a change script to its old side and returns the
// line sequence it produces; for a correct script this is the new side.
func reconstruct(t *testing.T, s *Script) []string {
	t.Helper()
	var out []string
	xi := 0
	for _, h := range s.Hunks {
		require.GreaterOrEqual(t, h.OldPos, xi, "hunks out of order")
		for ; xi < h.OldPos; xi++ {
			out = append(out, string(s.Old[xi]))
		}
		for i := 0; i < h.NewLines; i++ {
			out = append(out, string(s.New[h.NewPos+i]))
		}
		xi += h.OldLines
	}
	for ; xi < len(s.Old); xi++ {
		out = append(out, string(s.Old[xi]))
	}
	return out
}

func lines(data []byte) []string {
	var out []string
	for _, r := range Split(data) {
		out = append(out, string(r))
	}
	return out
}

func TestAlgorithmsProduceValidScripts(t *testing.T) {
	a := join(
		"func main() {",
		"\tsetup()",
		"\trun()",
		"}",
		"",
		"func helper() {",
		"\tlog()",
		"}",
	)
	b := join(
		"func helper() {",
		"\tlog()",
		"\ttrace()",
		"}",
		"",
		"func main() {",
		"\tsetup()",
		"\trun()",
		"}",
	)

	for _, algo := range []Algorithm{Default, Patience, Histogram} {
		s, err := ChangeScript(a, b, Options{Algorithm: algo})
		require.NoError(t, err)
		require.Equal(t, lines(b), reconstruct(t, s), "algorithm %v", algo)
	}
}

func TestMinimalProducesValidScript(t *testing.T) {
	a := join("one", "two", "three", "four", "five")
	b := join("five", "one", "three", "two", "four")

	s, err := ChangeScript(a, b, Options{Minimal: true})
	require.NoError(t, err)
	require.Equal(t, lines(b), reconstruct(t, s))
}

func TestDeterministicScripts(t *testing.T) {
	a := join("one", "two", "three", "four", "five", "six")
	b := join("four", "five", "one", "two", "six", "three")

	for _, algo := range []Algorithm{Default, Patience, Histogram} {
		s1, err := ChangeScript(a, b, Options{Algorithm: algo})
		require.NoError(t, err)
		s2, err := ChangeScript(a, b, Options{Algorithm: algo})
		require.NoError(t, err)
		require.Equal(t, s1.Hunks, s2.Hunks, "algorithm %v", algo)
	}
}

func TestPatienceAnchorsUniqueLines(t *testing.T) {
	// "x" is frequent on both sides and must not anchor the alignment;
	// the unique lines "alpha" and "omega" must stay matched.
	a := join("x", "alpha", "x", "omega", "x")
	b := join("x", "x", "alpha", "x", "x", "omega")

	s, err := ChangeScript(a, b, Options{Algorithm: Patience})
	require.NoError(t, err)
	require.Equal(t, lines(b), reconstruct(t, s))

	deleted := 0
	for _, h := range s.Hunks {
		deleted += h.OldLines
	}
	require.LessOrEqual(t, deleted, 1, "patience deleted a unique anchor line")
}
