// Package printf renders C/POSIX printf format strings over typed Go
// values.
//
// The full directive grammar is supported: the flags "-+ #0'", literal and
// '*' widths and precisions, positional "N$" references (including "*N$"),
// the length modifiers hh, h, l, ll, q, j, z, t and L, and the conversions
// d i u o x X f F e E g G a A c s p n C S and %. Output is bit-compatible
// with glibc for locale-neutral cases.
//
// The central entry point is [Render], which writes through a [Sink]. The
// narrow helpers [Fprintf], [Sprintf] and [Snprintf] and their wide
// counterparts [Fwprintf], [Swprintf] and [Snwprintf] cover the common
// cases:
//
//	n, err := printf.Fprintf(os.Stdout, "%-10s|%'12.2f\n", "total", 1234567.891)
//
// # Narrow and Wide Text
//
// One algorithm serves both text widths through the [Unit] constraint.
// Narrow text is a byte sequence in the locale charset; wide text is a
// rune sequence. A narrow value rendered into a wide sink, or the reverse,
// is converted through the locale charset. Conversion failures are
// reported as [ErrEncodingFailure].
//
// # Arguments
//
// Native Go values bind to a renderable category with [ArgOf]:
//
//   - signed and unsigned integers, bool → integer conversions
//   - float32, float64 → floating conversions
//   - string, []byte → narrow text; []rune → wide text
//   - integer pointers → %n slots
//   - fmt.Formatter, fmt.Stringer, error, encoding.TextMarshaler → their
//     own text, padded to the field width
//
// The constructors [Int], [Uint], [Float], [Char], [WChar], [Str], [WStr],
// [Ptr], [Count] and [Value] bind explicitly. A type implementing [Valuer]
// chooses its own binding. Use [IsSupported] to check at runtime whether a
// type can satisfy a conversion:
//
//	if printf.IsSupported[time.Duration]('d') { ... }
//
// # Sinks
//
// [NewStream] and [NewWideStream] write to an io.Writer. [NewBuffer]
// stores into a caller-owned slice and keeps counting past its end, so a
// nil slice measures the output:
//
//	n, _ := printf.Snprintf(nil, format, args...)
//	buf := make([]byte, n)
//	printf.Snprintf(buf, format, args...)
//
// A sink carries ambient [Settings] used by [Sink.Print]. Every render
// restores them before returning, on success and on failure.
//
// # Locales
//
// A [Locale] supplies the decimal point, thousands separator, grouping
// pattern and narrow charset. [Neutral] is the default; [POSIX] matches
// the C locale. Locales are built from a [LocaleConfig], derived from CLDR
// data with [LocaleFor], or loaded from YAML or TOML files with
// [LoadLocales], [LoadLocalesTOML] and [LoadLocaleFile].
//
// The ' flag groups decimal integer and floating output whenever it is
// present. It never groups o, x, X or a conversions.
//
// # Errors
//
// A failed render returns -1 and an error wrapping one of the package
// sentinels, or the writer's own error:
//
//   - [ErrUnsupportedConversion]: malformed or unknown directive
//   - [ErrMissingArgument]: a directive references a missing argument
//   - [ErrTypeMismatch]: an argument cannot satisfy its conversion
//   - [ErrEncodingFailure]: narrow/wide conversion impossible
//   - [ErrOverflow]: output longer than a C int can count
//   - [ErrMixedIndexing]: positional and sequential references mixed
//
// [KindOf] maps an error to its [ErrorKind].
package printf
