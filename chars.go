package printf

import (
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Unit is a text unit. Narrow text is a sequence of bytes in the locale
// charset; wide text is a sequence of runes, one per character.
type Unit interface {
	byte | rune
}

// charset converts between narrow bytes and wide characters.
type charset struct {
	name  string
	enc   encoding.Encoding
	utf8  bool
	ascii bool
}

var utf8Charset = &charset{name: "UTF-8", enc: unicode.UTF8, utf8: true}

var asciiCharset = &charset{name: "US-ASCII", ascii: true}

func lookupCharset(name string) (*charset, error) {
	switch strings.ToUpper(strings.ReplaceAll(name, "_", "-")) {
	case "", "UTF-8", "UTF8":
		return utf8Charset, nil
	case "ASCII", "US-ASCII", "ANSI-X3.4-1968", "POSIX", "C":
		return asciiCharset, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		// WHATWG labels such as "latin1" or "sjis".
		if enc, err = htmlindex.Get(name); err != nil {
			return nil, errors.Wrapf(ErrEncodingFailure, "unknown charset %q", name)
		}
	}
	canonical, err := ianaindex.MIME.Name(enc)
	if err != nil || canonical == "" {
		if canonical, err = ianaindex.IANA.Name(enc); err != nil {
			canonical = name
		}
	}
	if enc == unicode.UTF8 {
		return utf8Charset, nil
	}
	return &charset{name: canonical, enc: enc}, nil
}

// appendRune encodes one character into narrow bytes.
func (cs *charset) appendRune(dst []byte, r rune) ([]byte, error) {
	switch {
	case cs.utf8:
		if !utf8.ValidRune(r) {
			return dst, errors.Wrapf(ErrEncodingFailure, "invalid character %U", r)
		}
		return utf8.AppendRune(dst, r), nil
	case cs.ascii:
		if r < 0 || r >= utf8.RuneSelf {
			return dst, errors.Wrapf(ErrEncodingFailure, "character %U not representable in %s", r, cs.name)
		}
		return append(dst, byte(r)), nil
	}
	if !utf8.ValidRune(r) {
		return dst, errors.Wrapf(ErrEncodingFailure, "invalid character %U", r)
	}
	out, err := cs.enc.NewEncoder().Bytes(utf8.AppendRune(nil, r))
	if err != nil {
		return dst, errors.Wrapf(ErrEncodingFailure, "character %U not representable in %s", r, cs.name)
	}
	return append(dst, out...), nil
}

// encode converts wide characters into narrow bytes.
func (cs *charset) encode(rs []rune) ([]byte, error) {
	out := make([]byte, 0, len(rs))
	var err error
	for _, r := range rs {
		if out, err = cs.appendRune(out, r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// decode converts narrow bytes into wide characters.
func (cs *charset) decode(b []byte) ([]rune, error) {
	switch {
	case cs.utf8:
		if !utf8.Valid(b) {
			return nil, errors.Wrap(ErrEncodingFailure, "invalid multibyte sequence")
		}
		return []rune(string(b)), nil
	case cs.ascii:
		rs := make([]rune, len(b))
		for i, c := range b {
			if c >= utf8.RuneSelf {
				return nil, errors.Wrapf(ErrEncodingFailure, "byte %#x not representable in %s", c, cs.name)
			}
			rs[i] = rune(c)
		}
		return rs, nil
	}
	out, err := cs.enc.NewDecoder().Bytes(b)
	if err != nil {
		return nil, errors.Wrapf(ErrEncodingFailure, "decode %s", cs.name)
	}
	return []rune(string(out)), nil
}

// units converts every kind of source text into sink units of one width.
// A limit below zero means no limit; otherwise at most limit units are
// produced and a character is never split.
type units[C Unit] interface {
	// text converts Unicode text produced by the engine itself.
	text(s string) ([]C, error)
	// narrow converts locale-encoded narrow text.
	narrow(b []byte, limit int) ([]C, error)
	// wide converts wide text.
	wide(rs []rune, limit int) ([]C, error)
	// toText returns sink units as Unicode text.
	toText(p []C) string
}

type narrowUnits struct{ cs *charset }

func (n narrowUnits) text(s string) ([]byte, error) {
	if n.cs.utf8 {
		return []byte(s), nil
	}
	return n.cs.encode([]rune(s))
}

func (n narrowUnits) narrow(b []byte, limit int) ([]byte, error) {
	if limit >= 0 && len(b) > limit {
		b = b[:limit]
	}
	return b, nil
}

func (n narrowUnits) wide(rs []rune, limit int) ([]byte, error) {
	out := make([]byte, 0, len(rs))
	var buf []byte
	var err error
	for _, r := range rs {
		if buf, err = n.cs.appendRune(buf[:0], r); err != nil {
			return nil, err
		}
		if limit >= 0 && len(out)+len(buf) > limit {
			break
		}
		out = append(out, buf...)
	}
	return out, nil
}

func (n narrowUnits) toText(p []byte) string {
	if n.cs.utf8 || n.cs.ascii {
		return string(p)
	}
	rs, err := n.cs.decode(p)
	if err != nil {
		return string(p)
	}
	return string(rs)
}

type wideUnits struct{ cs *charset }

func (w wideUnits) text(s string) ([]rune, error) {
	return []rune(s), nil
}

func (w wideUnits) narrow(b []byte, limit int) ([]rune, error) {
	rs, err := w.cs.decode(b)
	if err != nil {
		return nil, err
	}
	return w.wide(rs, limit)
}

func (w wideUnits) wide(rs []rune, limit int) ([]rune, error) {
	if limit >= 0 && len(rs) > limit {
		rs = rs[:limit]
	}
	return rs, nil
}

func (w wideUnits) toText(p []rune) string { return string(p) }

func unitsFor[C Unit](cs *charset) units[C] {
	var zero C
	if _, narrow := any(zero).(byte); narrow {
		return any(narrowUnits{cs: cs}).(units[C])
	}
	return any(wideUnits{cs: cs}).(units[C])
}

// ascii converts ASCII text to sink units without a charset.
func ascii[C Unit](s string) []C {
	out := make([]C, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = C(s[i])
	}
	return out
}
