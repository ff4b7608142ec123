package printf

import (
	"io"
	"math"

	"fortio.org/safecast"
	"github.com/cockroachdb/errors"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
)

// Alignment places a field's text within its width.
type Alignment int

const (
	AlignRight    Alignment = iota // pad before the text
	AlignLeft                      // pad after the text
	AlignInternal                  // pad between sign or prefix and digits
)

var alignNames = [...]string{"right", "left", "internal"}

// String returns the alignment name.
func (a Alignment) String() string {
	if a >= 0 && int(a) < len(alignNames) {
		return alignNames[a]
	}
	return "unknown"
}

// Settings is a sink's ambient formatting state. Print renders with it;
// Render replaces it per directive and restores the caller's value before
// returning.
//
// A zero Fill pads with spaces. Precision applies only when HasPrecision
// is set, so a precision of 0 can be asked for explicitly; a negative
// Precision means the conversion's default.
type Settings struct {
	Fill         rune
	Width        int
	Precision    int
	HasPrecision bool
	Align        Alignment
	Flags        Flags
}

type options struct {
	locale  *Locale
	log     *zap.Logger
	display bool
}

// Option configures a Sink.
type Option func(*options)

// WithLocale sets the locale numbers and narrow text are rendered with.
// Default: Neutral.
func WithLocale(l *Locale) Option {
	return func(o *options) {
		if l != nil {
			o.locale = l
		}
	}
}

// WithLogger sets the logger failed renders are reported to at debug
// level. Default: no logging.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithDisplayWidth measures field widths in terminal columns instead of
// text units, so East Asian wide characters count twice.
func WithDisplayWidth() Option {
	return func(o *options) { o.display = true }
}

// Sink is the destination of a render: a stream, a bounded buffer, or an
// internal growing buffer. A Sink is not safe for concurrent use; distinct
// sinks may be used from different goroutines.
type Sink[C Unit] struct {
	w       io.Writer
	dst     []C
	grow    bool
	locale  *Locale
	units   units[C]
	display bool
	log     *zap.Logger

	settings Settings
	n        int
}

func newSink[C Unit](opts []Option) *Sink[C] {
	o := options{locale: Neutral, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Sink[C]{
		locale:  o.locale,
		units:   unitsFor[C](o.locale.cs),
		display: o.display,
		log:     o.log,
	}
}

// NewStream returns a narrow sink writing to w.
func NewStream(w io.Writer, opts ...Option) *Sink[byte] {
	s := newSink[byte](opts)
	s.w = w
	return s
}

// NewWideStream returns a wide sink writing to w. Wide text is encoded
// through the locale charset on its way out; the count is in characters.
func NewWideStream(w io.Writer, opts ...Option) *Sink[rune] {
	s := newSink[rune](opts)
	s.w = w
	return s
}

// NewBuffer returns a bounded sink storing into dst. Output beyond len(dst)
// is discarded while the count keeps the full length, so a nil or empty
// dst queries the size a render needs. No terminator is written.
func NewBuffer[C Unit](dst []C, opts ...Option) *Sink[C] {
	s := newSink[C](opts)
	s.dst = dst
	return s
}

func newCollector[C Unit](opts ...Option) *Sink[C] {
	s := newSink[C](opts)
	s.grow = true
	return s
}

// Locale returns the sink's locale.
func (s *Sink[C]) Locale() *Locale { return s.locale }

// Settings returns the ambient formatting state.
func (s *Sink[C]) Settings() Settings { return s.settings }

// SetSettings replaces the ambient formatting state and returns the
// previous one.
func (s *Sink[C]) SetSettings(st Settings) Settings {
	prev := s.settings
	s.settings = st
	return prev
}

// Text returns, as Unicode text, what the last call stored. Streams store
// nothing and return "".
func (s *Sink[C]) Text() string {
	return s.units.toText(s.stored())
}

func (s *Sink[C]) stored() []C {
	switch {
	case s.w != nil:
		return nil
	case s.grow:
		return s.dst
	default:
		return s.dst[:min(s.n, len(s.dst))]
	}
}

// Printf renders format with native Go arguments.
func (s *Sink[C]) Printf(format string, args ...any) (int, error) {
	return Render(s, formatOf[C](format), Args(args...)...)
}

// Print writes one value using the ambient settings, the way a stream
// insertion does. The width applies to this value only and is reset to 0
// afterwards; the other settings persist.
func (s *Sink[C]) Print(v any) (int, error) {
	st := s.settings
	s.settings.Width = 0
	s.reset()

	a := ArgOf(v)
	b := binding{
		dir:   Directive{Verb: defaultVerb(a), Flags: st.Flags},
		arg:   a,
		width: min(max(st.Width, 0), MaxField),
	}
	if st.HasPrecision && st.Precision >= 0 {
		b.prec, b.hasPrec = min(st.Precision, MaxField), true
	}

	f, err := s.convert(&b)
	if err == nil {
		err = s.writeField(f, st)
	}
	if err != nil {
		s.log.Debug("print failed", zap.Stringer("arg", a), zap.Error(err))
		return -1, err
	}
	return s.n, nil
}

// defaultVerb picks the conversion Print renders a category with.
func defaultVerb(a Arg) byte {
	switch a.cat {
	case Signed:
		return 'd'
	case Unsigned:
		return 'u'
	case Floating:
		return 'g'
	case Character:
		return 'c'
	case Pointer:
		return 'p'
	default:
		return 's'
	}
}

func (s *Sink[C]) reset() {
	s.n = 0
	if s.grow {
		s.dst = s.dst[:0]
	}
}

// emit appends p to the destination and advances the count. The count is
// kept within a C int.
func (s *Sink[C]) emit(p []C) error {
	total, err := safecast.Conv[int32](s.n + len(p))
	if err != nil {
		return errors.Wrapf(ErrOverflow, "output exceeds %d units", math.MaxInt32)
	}
	switch {
	case s.w != nil:
		if err := s.write(p); err != nil {
			return err
		}
	case s.grow:
		s.dst = append(s.dst, p...)
	case s.n < len(s.dst):
		copy(s.dst[s.n:], p)
	}
	s.n = int(total)
	return nil
}

func (s *Sink[C]) write(p []C) error {
	var b []byte
	switch u := any(p).(type) {
	case []byte:
		b = u
	case []rune:
		enc, err := s.locale.cs.encode(u)
		if err != nil {
			return err
		}
		b = enc
	}
	if _, err := s.w.Write(b); err != nil {
		return errors.Wrap(err, "write")
	}
	return nil
}

// measure returns the width p occupies: text units, or terminal columns
// under WithDisplayWidth.
func (s *Sink[C]) measure(p []C) int {
	if s.display {
		return runewidth.StringWidth(s.units.toText(p))
	}
	return len(p)
}

// writeField emits a converted field padded to st.Width with st.Fill. The
// fill is repeated once per missing unit.
func (s *Sink[C]) writeField(f field[C], st Settings) error {
	pad := st.Width - s.measure(f.prefix) - s.measure(f.body)
	if pad <= 0 {
		return s.emitAll(f.prefix, f.body)
	}
	fill := st.Fill
	if fill == 0 {
		fill = ' '
	}
	unit, err := s.units.text(string(fill))
	if err != nil {
		return err
	}
	padding := make([]C, 0, pad*len(unit))
	for range pad {
		padding = append(padding, unit...)
	}
	switch st.Align {
	case AlignLeft:
		return s.emitAll(f.prefix, f.body, padding)
	case AlignInternal:
		return s.emitAll(f.prefix, padding, f.body)
	default:
		return s.emitAll(padding, f.prefix, f.body)
	}
}

func (s *Sink[C]) emitAll(parts ...[]C) error {
	for _, p := range parts {
		if err := s.emit(p); err != nil {
			return err
		}
	}
	return nil
}
