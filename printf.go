package printf

import (
	"io"

	"go.uber.org/zap"
)

// Render formats args according to format and writes the result through s.
// It returns the number of units written, or that would have been written
// to a bounded sink with enough room. On failure it returns -1 and an error
// wrapping one of the package sentinels, or the destination's write error.
//
// The whole format is scanned and every directive bound before anything is
// written, so malformed formats and bad arguments produce no output. The
// sink's Settings are restored on every return.
func Render[C Unit](s *Sink[C], format []C, args ...Arg) (int, error) {
	saved := s.settings
	defer func() { s.settings = saved }()

	n, offset, err := s.render(format, args)
	if err != nil {
		s.log.Debug("render failed",
			zap.String("format", s.units.toText(format)),
			zap.Int("offset", offset),
			zap.Error(err),
		)
		return -1, err
	}
	return n, nil
}

func (s *Sink[C]) render(format []C, args []Arg) (int, int, error) {
	s.reset()
	var (
		pieces []Piece[C]
		dirs   []*Directive
	)
	for p, err := range Scan(format) {
		if err != nil {
			return 0, p.Offset, atOffset(err, p.Offset)
		}
		pieces = append(pieces, p)
		if p.Directive != nil {
			dirs = append(dirs, p.Directive)
		}
	}

	bound, offset, err := bind(dirs, args)
	if err != nil {
		return 0, offset, err
	}

	next := 0
	for _, p := range pieces {
		if p.Directive == nil {
			if err := s.emit(p.Literal); err != nil {
				return 0, p.Offset, atOffset(err, p.Offset)
			}
			continue
		}
		if err := s.directive(&bound[next]); err != nil {
			return 0, p.Offset, atOffset(err, p.Offset)
		}
		next++
	}
	return s.n, 0, nil
}

// formatOf converts a Go string into format units: UTF-8 bytes for narrow
// formats, characters for wide ones.
func formatOf[C Unit](format string) []C {
	var zero C
	if _, narrow := any(zero).(byte); narrow {
		return any([]byte(format)).([]C)
	}
	return any([]rune(format)).([]C)
}

// Fprintf writes to w like C's fprintf, with the Neutral locale.
func Fprintf(w io.Writer, format string, args ...any) (int, error) {
	return NewStream(w).Printf(format, args...)
}

// Sprintf returns the formatted narrow text.
func Sprintf(format string, args ...any) (string, error) {
	s := newCollector[byte]()
	if _, err := s.Printf(format, args...); err != nil {
		return "", err
	}
	return string(s.dst), nil
}

// Snprintf stores at most len(dst) bytes into dst like C's snprintf and
// returns the full length. A nil dst only measures.
func Snprintf(dst []byte, format string, args ...any) (int, error) {
	return NewBuffer(dst).Printf(format, args...)
}

// Fwprintf renders a wide format and writes it to w encoded in the Neutral
// locale's charset. The count is in characters.
func Fwprintf(w io.Writer, format string, args ...any) (int, error) {
	return NewWideStream(w).Printf(format, args...)
}

// Swprintf returns the formatted wide text.
func Swprintf(format string, args ...any) ([]rune, error) {
	s := newCollector[rune]()
	if _, err := s.Printf(format, args...); err != nil {
		return nil, err
	}
	return s.dst, nil
}

// Snwprintf stores at most len(dst) characters into dst and returns the
// full length. A nil dst only measures.
func Snwprintf(dst []rune, format string, args ...any) (int, error) {
	return NewBuffer(dst).Printf(format, args...)
}
