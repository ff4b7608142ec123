package printf

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkEmitOverflow(t *testing.T) {
	t.Parallel()
	s := NewBuffer[byte](nil)
	s.n = math.MaxInt32 - 1
	require.NoError(t, s.emit([]byte("x")))
	assert.Equal(t, math.MaxInt32, s.n)

	err := s.emit([]byte("y"))
	require.ErrorIs(t, err, ErrOverflow)
	assert.Equal(t, math.MaxInt32, s.n)
}

func TestSinkEmitBounded(t *testing.T) {
	t.Parallel()
	dst := make([]rune, 4)
	s := NewBuffer(dst)
	require.NoError(t, s.emit([]rune("abc")))
	require.NoError(t, s.emit([]rune("def")))
	require.NoError(t, s.emit([]rune("g")))
	assert.Equal(t, 7, s.n)
	assert.Equal(t, "abcd", string(dst))
	assert.Equal(t, "abcd", s.Text())
}

func TestSinkCollector(t *testing.T) {
	t.Parallel()
	s := newCollector[rune]()
	_, err := s.Printf("%s-%d", "ab", 1)
	require.NoError(t, err)
	assert.Equal(t, "ab-1", s.Text())

	_, err = s.Printf("x")
	require.NoError(t, err)
	assert.Equal(t, "x", s.Text())
}

func TestSinkStreamText(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	s := NewStream(&buf)
	_, err := s.Printf("abc")
	require.NoError(t, err)
	assert.Empty(t, s.Text())
	assert.Equal(t, "abc", buf.String())
}

func TestWideStreamEncodingFailure(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	s := NewWideStream(&buf, WithLocale(POSIX))
	n, err := s.Printf("ok é")
	require.ErrorIs(t, err, ErrEncodingFailure)
	assert.Equal(t, -1, n)
}

func TestWriteField(t *testing.T) {
	t.Parallel()
	f := field[byte]{prefix: []byte("-"), body: []byte("42")}
	tests := map[string]struct {
		settings Settings
		want     string
	}{
		"no width":    {settings: Settings{}, want: "-42"},
		"narrow":      {settings: Settings{Width: 2}, want: "-42"},
		"right":       {settings: Settings{Width: 6}, want: "   -42"},
		"left":        {settings: Settings{Width: 6, Align: AlignLeft}, want: "-42   "},
		"internal":    {settings: Settings{Width: 6, Align: AlignInternal, Fill: '0'}, want: "-00042"},
		"custom fill": {settings: Settings{Width: 5, Fill: '*'}, want: "**-42"},
		"wide fill":   {settings: Settings{Width: 5, Fill: '·'}, want: "··-42"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := NewBuffer(make([]byte, 16))
			require.NoError(t, s.writeField(f, tt.settings))
			assert.Equal(t, tt.want, s.Text())
		})
	}
}

func TestFieldSettings(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		flags  Flags
		zeroOK bool
		align  Alignment
		fill   rune
	}{
		"default":       {align: AlignRight, fill: ' '},
		"minus":         {flags: FlagMinus, zeroOK: true, align: AlignLeft, fill: ' '},
		"zero":          {flags: FlagZero, zeroOK: true, align: AlignInternal, fill: '0'},
		"zero refused":  {flags: FlagZero, align: AlignRight, fill: ' '},
		"minus beats 0": {flags: FlagMinus | FlagZero, zeroOK: true, align: AlignLeft, fill: ' '},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			b := &binding{dir: Directive{Flags: tt.flags, Verb: 'd'}, width: 8, prec: 2, hasPrec: true}
			st := fieldSettings(b, tt.zeroOK)
			assert.Equal(t, tt.align, st.Align)
			assert.Equal(t, tt.fill, st.Fill)
			assert.Equal(t, 8, st.Width)
			assert.Equal(t, 2, st.Precision)
			assert.True(t, st.HasPrecision)
			assert.Equal(t, tt.flags, st.Flags)
		})
	}
}

func TestSinkMeasure(t *testing.T) {
	t.Parallel()
	plain := NewBuffer[byte](nil)
	display := NewBuffer[byte](nil, WithDisplayWidth())
	assert.Equal(t, 6, plain.measure([]byte("你好")))
	assert.Equal(t, 4, display.measure([]byte("你好")))

	wide := NewBuffer[rune](nil, WithDisplayWidth())
	assert.Equal(t, 4, wide.measure([]rune("你好")))
}

func TestSinkOptionsIgnoreNil(t *testing.T) {
	t.Parallel()
	s := NewBuffer[byte](nil, WithLocale(nil), WithLogger(nil))
	assert.Same(t, Neutral, s.Locale())
	assert.NotNil(t, s.log)
}

func TestSetSettingsReturnsPrevious(t *testing.T) {
	t.Parallel()
	s := NewBuffer[byte](nil)
	first := Settings{Width: 3}
	assert.Equal(t, Settings{}, s.SetSettings(first))
	assert.Equal(t, first, s.SetSettings(Settings{}))
}

func TestAlignmentString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "right", AlignRight.String())
	assert.Equal(t, "internal", AlignInternal.String())
	assert.Equal(t, "unknown", Alignment(7).String())
}

func TestRecord(t *testing.T) {
	t.Parallel()
	s := NewBuffer[byte](nil)
	s.n = 300
	slot := func(l Length, a Arg) *binding {
		return &binding{dir: Directive{Verb: 'n', Length: l}, arg: a}
	}

	var small int8
	require.NoError(t, s.record(slot(LengthNone, Count(&small))))
	assert.Equal(t, int8(44), small)

	var big int64
	require.NoError(t, s.record(slot(LengthNone, Count(&big))))
	assert.Equal(t, int64(300), big)

	require.ErrorIs(t, s.record(slot(LengthNone, Count[int](nil))), ErrTypeMismatch)
	require.ErrorIs(t, s.record(slot(LengthNone, Int(1))), ErrTypeMismatch)
}

func TestRecordLength(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		length Length
		count  int
		want   int
	}{
		"none":        {length: LengthNone, count: 70000, want: 70000},
		"hh":          {length: LengthHH, count: 300, want: 44},
		"hh negative": {length: LengthHH, count: 200, want: -56},
		"h":           {length: LengthH, count: 70000, want: 4464},
		"l":           {length: LengthL, count: 70000, want: 70000},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := NewBuffer[byte](nil)
			s.n = tt.count
			var got int
			b := &binding{dir: Directive{Verb: 'n', Length: tt.length}, arg: Count(&got)}
			require.NoError(t, s.record(b))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextOf(t *testing.T) {
	t.Parallel()
	b := &binding{dir: Directive{Verb: 's'}}

	got, formatter, err := textOf(42, b)
	require.NoError(t, err)
	assert.Equal(t, "42", got)
	assert.False(t, formatter)

	_, _, err = textOf(failingMarshaler{}, b)
	require.ErrorIs(t, err, ErrEncodingFailure)
}

type failingMarshaler struct{}

func (failingMarshaler) MarshalText() ([]byte, error) { return nil, errTextUnavailable }

var errTextUnavailable = assert.AnError
