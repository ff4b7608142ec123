package printf

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors for programmatic error handling. Every error returned by
// the package wraps exactly one of them.
var (
	ErrUnsupportedConversion = errors.New("unsupported conversion")
	ErrMissingArgument       = errors.New("missing argument")
	ErrTypeMismatch          = errors.New("type mismatch")
	ErrEncodingFailure       = errors.New("encoding failure")
	ErrOverflow              = errors.New("overflow")
	ErrMixedIndexing         = errors.New("mixed positional and sequential arguments")
)

// ErrorKind classifies a render failure.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindUnsupportedConversion
	KindMissingArgument
	KindTypeMismatch
	KindEncodingFailure
	KindOverflow
	KindMixedIndexing
	KindIO
)

var kindNames = map[ErrorKind]string{
	KindNone:                  "none",
	KindUnsupportedConversion: "unsupported-conversion",
	KindMissingArgument:       "missing-argument",
	KindTypeMismatch:          "type-mismatch",
	KindEncodingFailure:       "encoding-failure",
	KindOverflow:              "overflow",
	KindMixedIndexing:         "mixed-indexing",
	KindIO:                    "io",
}

// String returns the kind name.
func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

var kindSentinels = []struct {
	err  error
	kind ErrorKind
}{
	{ErrUnsupportedConversion, KindUnsupportedConversion},
	{ErrMissingArgument, KindMissingArgument},
	{ErrTypeMismatch, KindTypeMismatch},
	{ErrEncodingFailure, KindEncodingFailure},
	{ErrOverflow, KindOverflow},
	{ErrMixedIndexing, KindMixedIndexing},
}

// KindOf reports the kind of a render error. A nil error is KindNone; an
// error that wraps none of the sentinels came from the destination writer
// and is KindIO.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	for _, ks := range kindSentinels {
		if errors.Is(err, ks.err) {
			return ks.kind
		}
	}
	return KindIO
}

// atOffset attaches the format offset of the failing directive.
func atOffset(err error, offset int) error {
	return errors.WithDetailf(err, "format offset %d", offset)
}
