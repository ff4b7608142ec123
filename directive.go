package printf

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Flags is the set of flag characters given in a directive.
type Flags uint8

const (
	FlagMinus Flags = 1 << iota // '-' left-justify
	FlagPlus                    // '+' always sign
	FlagSpace                   // ' ' space for positive sign
	FlagZero                    // '0' zero padding
	FlagAlt                     // '#' alternate form
	FlagGroup                   // '\'' thousands grouping
)

var flagChars = []struct {
	flag Flags
	char byte
}{
	{FlagMinus, '-'},
	{FlagPlus, '+'},
	{FlagSpace, ' '},
	{FlagZero, '0'},
	{FlagAlt, '#'},
	{FlagGroup, '\''},
}

// Has reports whether every flag in f is set.
func (fs Flags) Has(f Flags) bool { return fs&f == f }

// String returns the flags in canonical order.
func (fs Flags) String() string {
	var sb strings.Builder
	for _, fc := range flagChars {
		if fs.Has(fc.flag) {
			sb.WriteByte(fc.char)
		}
	}
	return sb.String()
}

func flagFor(c byte) (Flags, bool) {
	for _, fc := range flagChars {
		if fc.char == c {
			return fc.flag, true
		}
	}
	return 0, false
}

// Length is a length modifier.
type Length uint8

const (
	LengthNone Length = iota
	LengthHH          // hh
	LengthH           // h
	LengthL           // l
	LengthLL          // ll (also q)
	LengthJ           // j
	LengthZ           // z
	LengthT           // t
	LengthBigL        // L
)

var lengthNames = [...]string{"", "hh", "h", "l", "ll", "j", "z", "t", "L"}

// String returns the modifier as written in a format string.
func (l Length) String() string {
	if int(l) < len(lengthNames) {
		return lengthNames[l]
	}
	return "?"
}

// bits returns the integer width a modifier imposes, or 0 when the bound
// value keeps its own width.
func (l Length) bits() int {
	switch l {
	case LengthHH:
		return 8
	case LengthH:
		return 16
	case LengthL, LengthLL, LengthJ, LengthZ, LengthT:
		return 64
	default:
		return 0
	}
}

// SpecKind tags a width or precision.
type SpecKind uint8

const (
	SpecNone    SpecKind = iota // absent
	SpecLiteral                 // digits in the format string
	SpecArg                     // '*' or '*N$'
)

// Spec is a width or precision specification. Index is the 1-based
// argument for '*N$' and 0 for a sequential '*'.
type Spec struct {
	Kind  SpecKind
	Value int
	Index int
}

func (s Spec) String() string {
	switch s.Kind {
	case SpecLiteral:
		return strconv.Itoa(s.Value)
	case SpecArg:
		if s.Index > 0 {
			return "*" + strconv.Itoa(s.Index) + "$"
		}
		return "*"
	default:
		return ""
	}
}

// MaxField caps literal and argument-supplied widths and precisions.
const MaxField = 4095

// conversions lists every conversion letter the scanner accepts. 'C' and
// 'S' are the XSI spellings of "lc" and "ls".
const conversions = "diouxXfFeEgGaAcspnCS%"

// Conversions returns the accepted conversion letters.
func Conversions() []byte {
	return []byte(conversions)
}

// Directive is one parsed %-construct.
type Directive struct {
	Flags     Flags
	Width     Spec
	Precision Spec
	Length    Length
	Verb      byte

	// Index is the explicit 1-based argument of an 'N$' prefix, 0 when
	// the value is taken sequentially.
	Index int

	// Offset is the position of the '%' in the format; End is one past
	// the conversion letter.
	Offset, End int
}

// String reassembles the directive in canonical form.
func (d Directive) String() string {
	var sb strings.Builder
	sb.WriteByte('%')
	if d.Index > 0 {
		sb.WriteString(strconv.Itoa(d.Index))
		sb.WriteByte('$')
	}
	sb.WriteString(d.Flags.String())
	sb.WriteString(d.Width.String())
	if d.Precision.Kind != SpecNone {
		sb.WriteByte('.')
		sb.WriteString(d.Precision.String())
	}
	sb.WriteString(d.Length.String())
	sb.WriteByte(d.Verb)
	return sb.String()
}

// Positional reports whether the directive uses any 'N$' reference.
func (d Directive) Positional() bool {
	return d.Index > 0 ||
		(d.Width.Kind == SpecArg && d.Width.Index > 0) ||
		(d.Precision.Kind == SpecArg && d.Precision.Index > 0)
}

// Wide reports whether a c or s conversion asks for wide characters.
func (d Directive) Wide() bool {
	return d.Verb == 'C' || d.Verb == 'S' || d.Length == LengthL
}

// conv returns the verb with the XSI spellings folded onto c and s.
func (d Directive) conv() byte {
	switch d.Verb {
	case 'C':
		return 'c'
	case 'S':
		return 's'
	default:
		return d.Verb
	}
}

// consumes reports whether the directive binds a value argument.
func (d Directive) consumes() bool { return d.Verb != '%' }

// ParseDirective parses a format string holding exactly one directive.
func ParseDirective(s string) (Directive, error) {
	var found *Directive
	for p, err := range Scan([]byte(s)) {
		if err != nil {
			return Directive{}, err
		}
		if p.Directive == nil || found != nil {
			return Directive{}, errors.Wrapf(ErrUnsupportedConversion, "%q is not a single directive", s)
		}
		found = p.Directive
	}
	if found == nil {
		return Directive{}, errors.Wrapf(ErrUnsupportedConversion, "%q holds no directive", s)
	}
	return *found, nil
}
