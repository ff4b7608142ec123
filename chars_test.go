package printf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCharset(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		name    string
		want    string
		wantErr error
	}{
		"utf8":         {name: "utf8", want: "UTF-8"},
		"utf-8 lower":  {name: "utf-8", want: "UTF-8"},
		"empty":        {name: "", want: "UTF-8"},
		"ascii":        {name: "ANSI_X3.4-1968", want: "US-ASCII"},
		"posix":        {name: "POSIX", want: "US-ASCII"},
		"latin1":       {name: "ISO-8859-1", want: "ISO-8859-1"},
		"windows":      {name: "windows-1252", want: "windows-1252"},
		"whatwg label": {name: "sjis", want: "Shift_JIS"},
		"unknown":      {name: "klingon", wantErr: ErrEncodingFailure},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cs, err := lookupCharset(tt.name)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cs.name)
		})
	}
}

func TestCharsetRoundTrip(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		charset string
		text    string
		encoded []byte
	}{
		"utf8":   {charset: "UTF-8", text: "añ€", encoded: []byte("añ€")},
		"ascii":  {charset: "US-ASCII", text: "abc", encoded: []byte("abc")},
		"latin1": {charset: "ISO-8859-1", text: "café", encoded: []byte{'c', 'a', 'f', 0xE9}},
		"cp1252": {charset: "windows-1252", text: "€1", encoded: []byte{0x80, '1'}},
		"koi8-r": {charset: "KOI8-R", text: "да", encoded: []byte{0xC4, 0xC1}},
		"empty":  {charset: "ISO-8859-1", text: "", encoded: []byte{}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cs, err := lookupCharset(tt.charset)
			require.NoError(t, err)

			got, err := cs.encode([]rune(tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.encoded, got)

			back, err := cs.decode(got)
			require.NoError(t, err)
			assert.Equal(t, tt.text, string(back))
		})
	}
}

func TestCharsetFailures(t *testing.T) {
	t.Parallel()

	_, err := asciiCharset.encode([]rune("é"))
	require.ErrorIs(t, err, ErrEncodingFailure)

	_, err = asciiCharset.decode([]byte{0xE9})
	require.ErrorIs(t, err, ErrEncodingFailure)

	_, err = utf8Charset.decode([]byte{0xff, 'a'})
	require.ErrorIs(t, err, ErrEncodingFailure)

	_, err = utf8Charset.encode([]rune{0x110000})
	require.ErrorIs(t, err, ErrEncodingFailure)

	latin1, err := lookupCharset("ISO-8859-1")
	require.NoError(t, err)
	_, err = latin1.encode([]rune("€"))
	require.ErrorIs(t, err, ErrEncodingFailure)
}

func TestNarrowUnitsLimit(t *testing.T) {
	t.Parallel()
	n := narrowUnits{cs: utf8Charset}

	got, err := n.wide([]rune("aé€"), -1)
	require.NoError(t, err)
	assert.Equal(t, "aé€", string(got))

	got, err = n.wide([]rune("aé€"), 2)
	require.NoError(t, err)
	assert.Equal(t, "a", string(got))

	got, err = n.wide([]rune("aé€"), 3)
	require.NoError(t, err)
	assert.Equal(t, "aé", string(got))

	got, err = n.narrow([]byte("hello"), 2)
	require.NoError(t, err)
	assert.Equal(t, "he", string(got))

	got, err = n.narrow([]byte("hi"), 5)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(got))
}

func TestWideUnits(t *testing.T) {
	t.Parallel()
	w := wideUnits{cs: utf8Charset}

	got, err := w.narrow([]byte("héllo"), 2)
	require.NoError(t, err)
	assert.Equal(t, []rune("hé"), got)

	got, err = w.wide([]rune("abc"), 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = w.narrow([]byte{0xC3}, -1)
	require.ErrorIs(t, err, ErrEncodingFailure)

	assert.Equal(t, "xyz", w.toText([]rune("xyz")))
}

func TestUnitsFor(t *testing.T) {
	t.Parallel()
	assert.IsType(t, narrowUnits{}, unitsFor[byte](utf8Charset))
	assert.IsType(t, wideUnits{}, unitsFor[rune](utf8Charset))
	assert.Equal(t, []rune("0x1f"), ascii[rune]("0x1f"))
	assert.Equal(t, []byte("(nil)"), ascii[byte]("(nil)"))
}
