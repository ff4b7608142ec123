package printf

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"

	"github.com/cockroachdb/errors"
)

// field is a converted directive ready for padding. prefix holds the sign
// and radix prefix that zero padding goes after.
type field[C Unit] struct {
	prefix []C
	body   []C
	zeroOK bool
}

// directive renders one bound directive through the sink.
func (s *Sink[C]) directive(b *binding) error {
	if b.dir.Verb == 'n' {
		return s.record(b)
	}
	f, err := s.convert(b)
	if err != nil {
		return err
	}
	s.settings = fieldSettings(b, f.zeroOK)
	return s.writeField(f, s.settings)
}

// fieldSettings translates a directive's flags into padding settings. '-'
// wins over '0', and '0' only applies to fields that allow it.
func fieldSettings(b *binding, zeroOK bool) Settings {
	st := Settings{Fill: ' ', Width: b.width, Flags: b.dir.Flags}
	if b.hasPrec {
		st.Precision, st.HasPrecision = b.prec, true
	}
	switch {
	case b.dir.Flags.Has(FlagMinus):
		st.Align = AlignLeft
	case b.dir.Flags.Has(FlagZero) && zeroOK:
		st.Align, st.Fill = AlignInternal, '0'
	}
	return st
}

// record stores the running count into a %n slot. The count is truncated
// to the hh or h width first, then to the width of the slot itself.
func (s *Sink[C]) record(b *binding) error {
	a := b.arg
	rv := reflect.ValueOf(a.v)
	if !a.slot || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.Wrapf(ErrTypeMismatch, "%%n needs a non-nil integer slot, got %s", a)
	}
	switch el := rv.Elem(); el.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := int64(s.n)
		if bits := b.dir.Length.bits(); bits > 0 && bits < 64 {
			n = truncSigned(n, bits)
		}
		el.SetInt(truncSigned(n, el.Type().Bits()))
		return nil
	default:
		return errors.Wrapf(ErrTypeMismatch, "%%n slot %s is not an integer", a)
	}
}

// convert selects the rendering for a directive by its conversion and the
// argument's category.
func (s *Sink[C]) convert(b *binding) (field[C], error) {
	d, a := b.dir, b.arg
	conv := d.conv()
	if a.cat == Streamable && conv != 'p' {
		return s.streamed(b)
	}
	switch conv {
	case 'd', 'i', 'u', 'o', 'x', 'X':
		neg, mag := a.integer(d.Length, conv == 'd' || conv == 'i')
		return s.numeric(formatInteger(d, b.prec, b.hasPrec, neg, mag, s.locale))
	case 'f', 'F', 'e', 'E', 'g', 'G', 'a', 'A':
		return s.numeric(formatFloat(d, b.prec, b.hasPrec, a.float(), s.locale))
	case 'c':
		return s.char(d, a)
	case 's':
		return s.str(b)
	case 'p':
		return s.pointer(a)
	default:
		return field[C]{}, errors.Wrapf(ErrUnsupportedConversion, "conversion %s", d)
	}
}

func (s *Sink[C]) numeric(n number) (field[C], error) {
	prefix, err := s.units.text(n.prefix)
	if err != nil {
		return field[C]{}, err
	}
	body, err := s.units.text(n.body)
	if err != nil {
		return field[C]{}, err
	}
	return field[C]{prefix: prefix, body: body, zeroOK: n.zeroOK}, nil
}

// char renders %c. Wide characters, and any value under %lc or %C, go
// through the charset; otherwise the value is emitted as one narrow byte.
func (s *Sink[C]) char(d Directive, a Arg) (field[C], error) {
	v, _ := a.int64()
	var (
		body []C
		err  error
	)
	if d.Wide() || a.wide {
		body, err = s.units.wide([]rune{rune(uint32(v))}, -1)
	} else {
		body, err = s.units.narrow([]byte{byte(v)}, -1)
	}
	if err != nil {
		return field[C]{}, err
	}
	return field[C]{body: body}, nil
}

// str renders %s. Precision caps the output in sink units without
// splitting a character converted from wide text.
func (s *Sink[C]) str(b *binding) (field[C], error) {
	limit := -1
	if b.hasPrec {
		limit = b.prec
	}
	var (
		body []C
		err  error
	)
	if b.arg.wide {
		body, err = s.units.wide(b.arg.ws, limit)
	} else {
		body, err = s.units.narrow([]byte(b.arg.s), limit)
	}
	if err != nil {
		return field[C]{}, err
	}
	return field[C]{body: body}, nil
}

func (s *Sink[C]) pointer(a Arg) (field[C], error) {
	addr, ok := a.address()
	if !ok {
		return field[C]{}, errors.Wrapf(ErrTypeMismatch, "%%p of %s", a)
	}
	text := "(nil)"
	if addr != 0 {
		text = "0x" + strconv.FormatUint(uint64(addr), 16)
	}
	return field[C]{body: ascii[C](text)}, nil
}

// streamed renders a value through its own text representation. Only the
// width applies, plus the precision of %s for values that are not
// fmt.Formatters.
func (s *Sink[C]) streamed(b *binding) (field[C], error) {
	text, formatter, err := textOf(b.arg.v, b)
	if err != nil {
		return field[C]{}, err
	}
	limit := -1
	if b.dir.conv() == 's' && b.hasPrec && !formatter {
		limit = b.prec
	}
	body, err := s.units.wide([]rune(text), limit)
	if err != nil {
		return field[C]{}, err
	}
	return field[C]{body: body}, nil
}

// textOf produces a value's text: fmt.Formatter first, then error and
// fmt.Stringer as fmt orders them, then encoding.TextMarshaler, then the
// default fmt rendering.
func textOf(v any, b *binding) (text string, formatter bool, err error) {
	if f, ok := v.(fmt.Formatter); ok {
		st := &state{flags: b.dir.Flags, prec: b.prec, hasPrec: b.hasPrec}
		f.Format(st, rune(b.dir.conv()))
		return string(st.buf), true, nil
	}
	switch v.(type) {
	case error, fmt.Stringer:
		return fmt.Sprint(v), false, nil
	}
	if m, ok := v.(encoding.TextMarshaler); ok {
		out, err := m.MarshalText()
		if err != nil {
			return "", false, errors.Wrapf(ErrEncodingFailure, "marshal %T: %v", v, err)
		}
		return string(out), false, nil
	}
	return fmt.Sprint(v), false, nil
}

// state is the fmt.State handed to a fmt.Formatter. It reports no width:
// padding is applied around the formatter's output.
type state struct {
	buf     []byte
	flags   Flags
	prec    int
	hasPrec bool
}

func (st *state) Write(p []byte) (int, error) {
	st.buf = append(st.buf, p...)
	return len(p), nil
}

func (st *state) Width() (int, bool) { return 0, false }

func (st *state) Precision() (int, bool) { return st.prec, st.hasPrec }

func (st *state) Flag(c int) bool {
	if c > 0xff {
		return false
	}
	f, ok := flagFor(byte(c))
	return ok && st.flags.Has(f)
}
