package printf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pieces[C Unit](t *testing.T, format []C) []string {
	t.Helper()
	var out []string
	for p, err := range Scan(format) {
		require.NoError(t, err)
		if p.Directive != nil {
			out = append(out, p.Directive.String())
			continue
		}
		out = append(out, unitsFor[C](utf8Charset).toText(p.Literal))
	}
	return out
}

func TestScanPieces(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format string
		want   []string
	}{
		"literal only":     {format: "hello", want: []string{"hello"}},
		"empty":            {format: "", want: nil},
		"mixed":            {format: "a%5.2fb%%c", want: []string{"a", "%5.2f", "b", "%", "c"}},
		"adjacent":         {format: "%d%s", want: []string{"%d", "%s"}},
		"percent width":    {format: "x%-5%y", want: []string{"x", "%", "y"}},
		"flags canonical":  {format: "%'#0 +-8x", want: []string{"%-+ 0#'8x"}},
		"positional":       {format: "%2$s%1$d", want: []string{"%2$s", "%1$d"}},
		"star":             {format: "%*.*s", want: []string{"%*.*s"}},
		"star positional":  {format: "%3$*1$.*2$d", want: []string{"%3$*1$.*2$d"}},
		"empty precision":  {format: "%.f", want: []string{"%.0f"}},
		"length modifiers": {format: "%hhd%hd%ld%lld%jd%zd%td%Lf", want: []string{"%hhd", "%hd", "%ld", "%lld", "%jd", "%zd", "%td", "%Lf"}},
		"q is ll":          {format: "%qu", want: []string{"%llu"}},
		"xsi":              {format: "%C%S", want: []string{"%C", "%S"}},
		"clamped width":    {format: "%99999d", want: []string{"%4095d"}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pieces(t, []byte(tt.format)))
		})
	}
}

func TestScanWide(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"é", "%ls", "ü"}, pieces(t, []rune("é%lsü")))
}

func TestScanOffsets(t *testing.T) {
	t.Parallel()
	var offsets []int
	for p, err := range Scan([]byte("ab%dc%%%5s")) {
		require.NoError(t, err)
		offsets = append(offsets, p.Offset)
	}
	assert.Equal(t, []int{0, 2, 4, 5, 7}, offsets)
}

func TestScanErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format string
		offset int
	}{
		"lone percent":   {format: "%", offset: 0},
		"trailing":       {format: "abc%", offset: 3},
		"unterminated":   {format: "x%-5.2", offset: 1},
		"unknown":        {format: "%k", offset: 0},
		"zero index":     {format: "%0$d", offset: 0},
		"length only":    {format: "%ll", offset: 0},
		"non-ascii verb": {format: "%é", offset: 0},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var (
				last Piece[rune]
				err  error
			)
			for p, e := range Scan([]rune(tt.format)) {
				last, err = p, e
				if e != nil {
					break
				}
			}
			require.ErrorIs(t, err, ErrUnsupportedConversion)
			assert.Equal(t, tt.offset, last.Offset)
		})
	}
}

func TestScanStopsEarly(t *testing.T) {
	t.Parallel()
	n := 0
	for range Scan([]byte("a%db%dc")) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestParseDirective(t *testing.T) {
	t.Parallel()
	d, err := ParseDirective("%-+ #0'12.5lld")
	require.NoError(t, err)
	assert.Equal(t, FlagMinus|FlagPlus|FlagSpace|FlagAlt|FlagZero|FlagGroup, d.Flags)
	assert.Equal(t, Spec{Kind: SpecLiteral, Value: 12}, d.Width)
	assert.Equal(t, Spec{Kind: SpecLiteral, Value: 5}, d.Precision)
	assert.Equal(t, LengthLL, d.Length)
	assert.Equal(t, byte('d'), d.Verb)
	assert.Equal(t, 0, d.Offset)
	assert.Equal(t, 14, d.End)
	assert.False(t, d.Positional())

	d, err = ParseDirective("%3$*1$.*2$x")
	require.NoError(t, err)
	assert.Equal(t, 3, d.Index)
	assert.Equal(t, Spec{Kind: SpecArg, Index: 1}, d.Width)
	assert.Equal(t, Spec{Kind: SpecArg, Index: 2}, d.Precision)
	assert.True(t, d.Positional())

	d, err = ParseDirective("%lc")
	require.NoError(t, err)
	assert.True(t, d.Wide())
	assert.Equal(t, byte('c'), d.conv())

	d, err = ParseDirective("%S")
	require.NoError(t, err)
	assert.True(t, d.Wide())
	assert.Equal(t, byte('s'), d.conv())
}

func TestParseDirectiveErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
	}{
		"empty":        {input: ""},
		"literal":      {input: "abc"},
		"two":          {input: "%d%d"},
		"with literal": {input: "x%d"},
		"percent":      {input: "%%"},
		"malformed":    {input: "%5"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseDirective(tt.input)
			require.ErrorIs(t, err, ErrUnsupportedConversion)
		})
	}
}

func TestConversions(t *testing.T) {
	t.Parallel()
	got := Conversions()
	assert.Contains(t, string(got), "n")
	got[0] = 'z'
	assert.Equal(t, byte('d'), Conversions()[0])
}

func TestFlagsAndLengthStrings(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "-'", (FlagGroup | FlagMinus).String())
	assert.Equal(t, "", Flags(0).String())
	assert.Equal(t, "hh", LengthHH.String())
	assert.Equal(t, "L", LengthBigL.String())
	assert.Equal(t, "?", Length(42).String())
}
