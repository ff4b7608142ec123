package printf

import (
	"github.com/cockroachdb/errors"
)

// binding is a directive with its operands resolved.
type binding struct {
	dir     Directive
	arg     Arg
	width   int
	prec    int
	hasPrec bool
}

// binder hands out arguments to directives. The first directive that takes
// an argument fixes the mode: sequential, or positional when it carries an
// 'N$' index. Every later reference must use the same mode.
type binder struct {
	args       []Arg
	next       int
	positional bool
	decided    bool
}

// bind resolves every directive against args. On failure it also returns
// the offset of the directive that could not be bound.
func bind(dirs []*Directive, args []Arg) ([]binding, int, error) {
	b := &binder{args: args}
	out := make([]binding, 0, len(dirs))
	for _, d := range dirs {
		bd, err := b.resolve(*d)
		if err != nil {
			return nil, d.Offset, atOffset(err, d.Offset)
		}
		out = append(out, bd)
	}
	return out, 0, nil
}

func (b *binder) mode(d Directive, index int) error {
	pos := index > 0
	if !b.decided {
		b.positional, b.decided = pos, true
	}
	if pos != b.positional {
		return errors.Wrapf(ErrMixedIndexing, "directive %s at offset %d", d, d.Offset)
	}
	return nil
}

// take returns the argument for an explicit index, or the next sequential
// one when index is 0.
func (b *binder) take(d Directive, index int) (Arg, int, error) {
	if err := b.mode(d, index); err != nil {
		return Arg{}, 0, err
	}
	if index == 0 {
		b.next++
		index = b.next
	}
	if index > len(b.args) {
		return Arg{}, index, errors.Wrapf(ErrMissingArgument, "directive %s at offset %d needs argument %d, %d supplied", d, d.Offset, index, len(b.args))
	}
	return b.args[index-1], index, nil
}

func (b *binder) intArg(d Directive, spec Spec, what string) (int64, error) {
	a, idx, err := b.take(d, spec.Index)
	if err != nil {
		return 0, err
	}
	v, ok := a.int64()
	if !ok {
		return 0, errors.Wrapf(ErrTypeMismatch, "%s of %s at offset %d: argument %d is %s", what, d, d.Offset, idx, a.cat)
	}
	return v, nil
}

func (b *binder) resolve(d Directive) (binding, error) {
	bd := binding{dir: d}

	switch d.Width.Kind {
	case SpecLiteral:
		bd.width = d.Width.Value
	case SpecArg:
		v, err := b.intArg(d, d.Width, "width")
		if err != nil {
			return binding{}, err
		}
		if v < 0 {
			bd.dir.Flags |= FlagMinus
			v = -v
		}
		bd.width = clampField(v)
	}

	switch d.Precision.Kind {
	case SpecLiteral:
		bd.prec, bd.hasPrec = d.Precision.Value, true
	case SpecArg:
		v, err := b.intArg(d, d.Precision, "precision")
		if err != nil {
			return binding{}, err
		}
		if v >= 0 {
			bd.prec, bd.hasPrec = clampField(v), true
		}
	}

	a, idx, err := b.take(d, d.Index)
	if err != nil {
		return binding{}, err
	}
	if !a.accepts(d.Verb) {
		return binding{}, errors.Wrapf(ErrTypeMismatch, "%s at offset %d: argument %d is %s", d, d.Offset, idx, a.cat)
	}
	bd.arg = a
	return bd, nil
}

// clampField caps a width or precision at MaxField. A negated MinInt64
// stays negative and clamps too.
func clampField(v int64) int {
	if v < 0 || v > MaxField {
		return MaxField
	}
	return int(v)
}
