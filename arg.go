package printf

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"unsafe"

	"fortio.org/safecast"
)

// Category is the renderable kind of an argument.
type Category uint8

const (
	CategoryNone Category = iota
	Signed
	Unsigned
	Floating
	Character
	String
	Pointer
	Streamable
)

var categoryNames = [...]string{"none", "signed", "unsigned", "floating", "char", "string", "pointer", "streamable"}

// String returns the category name.
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// Arg is one type-erased argument. The zero Arg has CategoryNone and
// satisfies no conversion.
type Arg struct {
	cat  Category
	bits int
	wide bool
	slot bool
	i    int64
	u    uint64
	f    float64
	s    string
	ws   []rune
	v    any
}

// Valuer lets a user type choose the argument it binds as.
type Valuer interface {
	PrintfArg() Arg
}

type signedInt interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsignedInt interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type floatNum interface {
	~float32 | ~float64
}

// Int binds a signed integer of the width of T.
func Int[T signedInt](v T) Arg {
	return Arg{cat: Signed, bits: int(unsafe.Sizeof(v)) * 8, i: int64(v)}
}

// Uint binds an unsigned integer of the width of T.
func Uint[T unsignedInt](v T) Arg {
	return Arg{cat: Unsigned, bits: int(unsafe.Sizeof(v)) * 8, u: uint64(v)}
}

// Float binds a floating value. float32 values are promoted exactly.
func Float[T floatNum](v T) Arg {
	return Arg{cat: Floating, bits: int(unsafe.Sizeof(v)) * 8, f: float64(v)}
}

// Bool binds false and true as the ints 0 and 1.
func Bool(b bool) Arg {
	a := Arg{cat: Signed, bits: 32}
	if b {
		a.i = 1
	}
	return a
}

// Char binds a narrow character.
func Char(c byte) Arg {
	return Arg{cat: Character, bits: 8, i: int64(c)}
}

// WChar binds a wide character.
func WChar(r rune) Arg {
	return Arg{cat: Character, bits: 32, wide: true, i: int64(r)}
}

// Str binds narrow text, bytes in the sink's charset.
func Str(s string) Arg {
	return Arg{cat: String, s: s}
}

// WStr binds wide text.
func WStr(rs []rune) Arg {
	return Arg{cat: String, wide: true, ws: rs}
}

// Ptr binds a pointer for %p. p may be nil or any pointer-kinded value.
func Ptr(p any) Arg {
	return Arg{cat: Pointer, v: p}
}

// Count binds the slot %n stores the running count into.
func Count[T signedInt](p *T) Arg {
	return Arg{cat: Pointer, slot: true, v: p}
}

// Value binds v as generic-streamable: it renders through its own text
// representation.
func Value(v any) Arg {
	return Arg{cat: Streamable, v: v}
}

// Category reports the argument's category.
func (a Arg) Category() Category { return a.cat }

// Wide reports whether a char or string argument holds wide text.
func (a Arg) Wide() bool { return a.wide }

// String describes the argument for diagnostics.
func (a Arg) String() string {
	switch a.cat {
	case Signed:
		return fmt.Sprintf("signed%d(%d)", a.bits, a.i)
	case Unsigned:
		return fmt.Sprintf("unsigned%d(%d)", a.bits, a.u)
	case Floating:
		return fmt.Sprintf("floating%d(%g)", a.bits, a.f)
	case Character:
		if a.wide {
			return fmt.Sprintf("wchar(%q)", rune(a.i))
		}
		return fmt.Sprintf("char(%q)", byte(a.i))
	case String:
		if a.wide {
			return fmt.Sprintf("wstring(%q)", string(a.ws))
		}
		return fmt.Sprintf("string(%q)", a.s)
	case Pointer:
		if a.slot {
			return fmt.Sprintf("slot(%T)", a.v)
		}
		return fmt.Sprintf("pointer(%T)", a.v)
	case Streamable:
		return fmt.Sprintf("streamable(%T)", a.v)
	default:
		return "none"
	}
}

// Args converts native values into an argument list with ArgOf.
func Args(vals ...any) []Arg {
	out := make([]Arg, len(vals))
	for i, v := range vals {
		out[i] = ArgOf(v)
	}
	return out
}

// ArgOf binds a native Go value to its category. Arg and Valuer values
// pass through; integer pointers become %n slots; types with a text
// representation (fmt.Formatter, fmt.Stringer, error,
// encoding.TextMarshaler) are streamable; other named basic types bind by
// their kind.
func ArgOf(v any) Arg {
	switch x := v.(type) {
	case Arg:
		return x
	case Valuer:
		return x.PrintfArg()
	case nil:
		return Ptr(nil)
	case bool:
		return Bool(x)
	case int:
		return Int(x)
	case int8:
		return Int(x)
	case int16:
		return Int(x)
	case int32:
		return Int(x)
	case int64:
		return Int(x)
	case uint:
		return Uint(x)
	case uint8:
		return Uint(x)
	case uint16:
		return Uint(x)
	case uint32:
		return Uint(x)
	case uint64:
		return Uint(x)
	case uintptr:
		return Uint(x)
	case float32:
		return Float(x)
	case float64:
		return Float(x)
	case string:
		return Str(x)
	case []byte:
		return Str(string(x))
	case []rune:
		return WStr(x)
	case *int:
		return Count(x)
	case *int8:
		return Count(x)
	case *int16:
		return Count(x)
	case *int32:
		return Count(x)
	case *int64:
		return Count(x)
	case unsafe.Pointer:
		return Ptr(x)
	case fmt.Formatter, fmt.Stringer, error, encoding.TextMarshaler:
		return Value(x)
	}
	return argOfKind(v)
}

func argOfKind(v any) Arg {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Arg{cat: Signed, bits: rv.Type().Bits(), i: rv.Int()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Arg{cat: Unsigned, bits: rv.Type().Bits(), u: rv.Uint()}
	case reflect.Float32, reflect.Float64:
		return Arg{cat: Floating, bits: rv.Type().Bits(), f: rv.Float()}
	case reflect.String:
		return Str(rv.String())
	case reflect.Pointer, reflect.UnsafePointer:
		return Ptr(v)
	default:
		return Value(v)
	}
}

// IsSupported reports whether values of type T bind to an argument that
// satisfies the conversion letter conv.
func IsSupported[T any](conv byte) bool {
	var zero T
	return ArgOf(any(zero)).accepts(conv)
}

func (a Arg) integral() bool {
	return a.cat == Signed || a.cat == Unsigned || a.cat == Character
}

// accepts reports whether the argument can satisfy a conversion.
func (a Arg) accepts(conv byte) bool {
	switch conv {
	case 'd', 'i', 'u', 'o', 'x', 'X':
		return a.integral() || a.cat == Streamable
	case 'f', 'F', 'e', 'E', 'g', 'G', 'a', 'A':
		return a.cat == Floating || a.cat == Signed || a.cat == Unsigned || a.cat == Streamable
	case 'c', 'C':
		return a.integral() || a.cat == Streamable
	case 's', 'S':
		return a.cat == String || a.cat == Streamable
	case 'p':
		_, ok := a.address()
		return ok
	case 'n':
		return a.slot
	default:
		return false
	}
}

// address returns the pointer value for %p. ok is false when the argument
// has no address representation; a nil pointer yields 0 and ok.
func (a Arg) address() (addr uintptr, ok bool) {
	switch a.cat {
	case String:
		if a.wide {
			if len(a.ws) == 0 {
				return 0, true
			}
			return uintptr(unsafe.Pointer(&a.ws[0])), true
		}
		return uintptr(unsafe.Pointer(unsafe.StringData(a.s))), true
	case Pointer, Streamable:
		if a.v == nil {
			return 0, a.cat == Pointer
		}
		rv := reflect.ValueOf(a.v)
		switch rv.Kind() {
		case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
			if rv.IsNil() {
				return 0, true
			}
			return rv.Pointer(), true
		}
	}
	return 0, false
}

// int64 returns an integral argument as int64, saturating unsigned values
// beyond its range. It is used for '*' widths and precisions.
func (a Arg) int64() (int64, bool) {
	switch a.cat {
	case Signed, Character:
		return a.i, true
	case Unsigned:
		v, err := safecast.Conv[int64](a.u)
		if err != nil {
			return math.MaxInt64, true
		}
		return v, true
	default:
		return 0, false
	}
}

func truncSigned(v int64, bits int) int64 {
	switch bits {
	case 8:
		return int64(int8(v))
	case 16:
		return int64(int16(v))
	case 32:
		return int64(int32(v))
	default:
		return v
	}
}

func mask(bits int) uint64 {
	if bits <= 0 || bits >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(bits) - 1
}

// integer returns the sign and magnitude an integer conversion renders.
// A length modifier narrower than 64 bits converts the value the way C
// does; otherwise a signed conversion preserves the value and an unsigned
// conversion reinterprets negative values at the argument's own width.
func (a Arg) integer(l Length, signedConv bool) (neg bool, mag uint64) {
	bits := l.bits()
	narrowed := bits > 0 && bits < 64
	if bits == 0 {
		bits = a.bits
	}
	switch a.cat {
	case Signed, Character:
		v := a.i
		if signedConv {
			if narrowed {
				v = truncSigned(v, bits)
			}
			if v < 0 {
				return true, uint64(-v)
			}
			return false, uint64(v)
		}
		return false, uint64(v) & mask(bits)
	case Unsigned:
		if signedConv && narrowed {
			v := truncSigned(int64(a.u), bits)
			if v < 0 {
				return true, uint64(-v)
			}
			return false, uint64(v)
		}
		if narrowed {
			return false, a.u & mask(bits)
		}
		return false, a.u
	}
	return false, 0
}

// float returns a numeric argument as float64.
func (a Arg) float() float64 {
	switch a.cat {
	case Signed:
		return float64(a.i)
	case Unsigned:
		return float64(a.u)
	default:
		return a.f
	}
}
