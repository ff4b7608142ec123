package printf

import (
	"iter"
	"strings"

	"github.com/cockroachdb/errors"
)

// Piece is one element of a scanned format string: either a literal span
// or a directive.
type Piece[C Unit] struct {
	Literal   []C
	Directive *Directive
	Offset    int
}

// Scan tokenizes a format string into literal spans and directives. The
// sequence stops after the first error. Calling it again restarts the scan.
//
// "%%" yields a single-character literal holding the '%'. A directive with
// conversion '%' and flags or a width ("%5%") is folded to the same literal.
func Scan[C Unit](format []C) iter.Seq2[Piece[C], error] {
	return func(yield func(Piece[C], error) bool) {
		i := 0
		for i < len(format) {
			if format[i] != '%' {
				j := i
				for j < len(format) && format[j] != '%' {
					j++
				}
				if !yield(Piece[C]{Literal: format[i:j], Offset: i}, nil) {
					return
				}
				i = j
				continue
			}
			if i+1 < len(format) && format[i+1] == '%' {
				if !yield(Piece[C]{Literal: format[i : i+1], Offset: i}, nil) {
					return
				}
				i += 2
				continue
			}
			d, err := scanDirective(format, i)
			if err != nil {
				yield(Piece[C]{Offset: i}, err)
				return
			}
			p := Piece[C]{Directive: &d, Offset: i}
			if !d.consumes() {
				p = Piece[C]{Literal: format[d.End-1 : d.End], Offset: i}
			}
			if !yield(p, nil) {
				return
			}
			i = d.End
		}
	}
}

type cursor[C Unit] struct {
	s []C
	i int
}

// at reports whether the next unit is the ASCII character b.
func (c *cursor[C]) at(b byte) bool {
	return c.i < len(c.s) && c.s[c.i] == C(b)
}

// ascii returns the next unit if it is ASCII.
func (c *cursor[C]) ascii() (byte, bool) {
	if c.i >= len(c.s) || c.s[c.i] < 0 || c.s[c.i] >= 0x80 {
		return 0, false
	}
	return byte(c.s[c.i]), true
}

// number consumes a run of decimal digits. Values saturate at MaxField.
func (c *cursor[C]) number() (int, bool) {
	start, n := c.i, 0
	for c.i < len(c.s) && c.s[c.i] >= '0' && c.s[c.i] <= '9' {
		n = n*10 + int(c.s[c.i]-'0')
		if n > MaxField {
			n = MaxField
		}
		c.i++
	}
	return n, c.i > start
}

// argIndex consumes "N$" with N > 0, restoring the cursor otherwise.
func (c *cursor[C]) argIndex() (int, bool) {
	save := c.i
	if n, ok := c.number(); ok && n > 0 && c.at('$') {
		c.i++
		return n, true
	}
	c.i = save
	return 0, false
}

// scanDirective parses the directive whose '%' sits at start:
// '%' [N$] flags* [width | * | *N$] ['.' [digits | * | *N$]] [length] conv
func scanDirective[C Unit](format []C, start int) (Directive, error) {
	c := &cursor[C]{s: format, i: start + 1}
	d := Directive{Offset: start}

	if n, ok := c.argIndex(); ok {
		d.Index = n
	}

	for {
		b, ok := c.ascii()
		if !ok {
			break
		}
		f, isFlag := flagFor(b)
		if !isFlag {
			break
		}
		d.Flags |= f
		c.i++
	}

	if c.at('*') {
		c.i++
		d.Width = Spec{Kind: SpecArg}
		if n, ok := c.argIndex(); ok {
			d.Width.Index = n
		}
	} else if n, ok := c.number(); ok {
		d.Width = Spec{Kind: SpecLiteral, Value: n}
	}

	if c.at('.') {
		c.i++
		if c.at('*') {
			c.i++
			d.Precision = Spec{Kind: SpecArg}
			if n, ok := c.argIndex(); ok {
				d.Precision.Index = n
			}
		} else {
			n, _ := c.number()
			d.Precision = Spec{Kind: SpecLiteral, Value: n}
		}
	}

	d.Length = scanLength(c)

	b, ok := c.ascii()
	if c.i >= len(format) {
		return Directive{}, errors.Wrapf(ErrUnsupportedConversion, "unterminated directive at offset %d", start)
	}
	if !ok || strings.IndexByte(conversions, b) < 0 {
		return Directive{}, errors.Wrapf(ErrUnsupportedConversion, "unknown conversion %q at offset %d", rune(format[c.i]), c.i)
	}
	d.Verb = b
	c.i++
	d.End = c.i
	return d, nil
}

func scanLength[C Unit](c *cursor[C]) Length {
	b, ok := c.ascii()
	if !ok {
		return LengthNone
	}
	switch b {
	case 'h':
		c.i++
		if c.at('h') {
			c.i++
			return LengthHH
		}
		return LengthH
	case 'l':
		c.i++
		if c.at('l') {
			c.i++
			return LengthLL
		}
		return LengthL
	case 'q':
		c.i++
		return LengthLL
	case 'j':
		c.i++
		return LengthJ
	case 'z':
		c.i++
		return LengthZ
	case 't':
		c.i++
		return LengthT
	case 'L':
		c.i++
		return LengthBigL
	default:
		return LengthNone
	}
}
