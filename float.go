package printf

import (
	"math"
	"strconv"
	"strings"
)

const defaultPrecision = 6

// mantissaDigits is the number of hex digits in a float64 fraction.
const mantissaDigits = 13

// formatFloat renders f, F, e, E, g, G, a and A. Infinities and NaNs keep
// their sign bit and are never zero padded.
func formatFloat(d Directive, prec int, hasPrec bool, v float64, loc *Locale) number {
	conv := d.conv()
	upper := conv == 'F' || conv == 'E' || conv == 'G' || conv == 'A'
	sign := signOf(math.Signbit(v), d.Flags)

	if math.IsInf(v, 0) || math.IsNaN(v) {
		body := "inf"
		if math.IsNaN(v) {
			body = "nan"
		}
		if upper {
			body = strings.ToUpper(body)
		}
		return number{prefix: sign, body: body}
	}

	abs := math.Abs(v)
	if !hasPrec {
		prec = defaultPrecision
	}
	alt := d.Flags.Has(FlagAlt)
	group := d.Flags.Has(FlagGroup)

	var s string
	mark := byte('e')
	switch conv {
	case 'f', 'F':
		s = strconv.FormatFloat(abs, 'f', prec, 64)
	case 'e', 'E':
		s = strconv.FormatFloat(abs, 'e', prec, 64)
	case 'g', 'G':
		s = formatGeneral(abs, prec, alt)
	case 'a', 'A':
		mark = 'p'
		s = formatHex(abs, prec, hasPrec)
		group = false
		if upper {
			sign += "0X"
		} else {
			sign += "0x"
		}
	}
	if upper {
		s = strings.ToUpper(s)
		mark -= 'a' - 'A'
	}
	return number{prefix: sign, body: localize(s, mark, group, alt, loc), zeroOK: true}
}

// formatGeneral picks fixed or exponent notation the way C's %g does: with
// P significant digits and decimal exponent X, fixed when P > X >= -4.
func formatGeneral(abs float64, prec int, alt bool) string {
	if prec == 0 {
		prec = 1
	}
	x := 0
	if abs != 0 {
		e := strconv.FormatFloat(abs, 'e', prec-1, 64)
		x, _ = strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	}
	var s string
	if prec > x && x >= -4 {
		s = strconv.FormatFloat(abs, 'f', prec-1-x, 64)
	} else {
		s = strconv.FormatFloat(abs, 'e', prec-1, 64)
	}
	if !alt {
		s = trimZeros(s)
	}
	return s
}

// trimZeros strips trailing fraction zeros and a bare decimal point.
func trimZeros(s string) string {
	mant, exp, hasExp := strings.Cut(s, "e")
	if strings.IndexByte(mant, '.') >= 0 {
		mant = strings.TrimRight(mant, "0")
		mant = strings.TrimSuffix(mant, ".")
	}
	if hasExp {
		return mant + "e" + exp
	}
	return mant
}

// formatHex renders a normalized hexadecimal mantissa and binary exponent
// without the 0x prefix. Subnormals keep a leading 0 and exponent -1022.
// An explicit precision rounds the fraction half to even, which can carry
// into the leading digit (1.f rounds to 2).
func formatHex(abs float64, prec int, hasPrec bool) string {
	bits := math.Float64bits(abs)
	biased := int(bits>>52) & 0x7ff
	mant := bits & (1<<52 - 1)
	lead := uint64(1)
	exp := biased - 1023
	switch {
	case abs == 0:
		lead, exp = 0, 0
	case biased == 0:
		lead, exp = 0, -1022
	}

	width := mantissaDigits
	if hasPrec && prec < mantissaDigits {
		shift := uint(mantissaDigits-prec) * 4
		keep := mant >> shift
		rem := mant & (1<<shift - 1)
		half := uint64(1) << (shift - 1)
		last := keep
		if prec == 0 {
			last = lead
		}
		if rem > half || (rem == half && last&1 == 1) {
			keep++
			if keep>>(uint(prec)*4) != 0 {
				lead++
				keep &= 1<<(uint(prec)*4) - 1
			}
		}
		mant, width = keep, prec
	}

	var frac string
	if width > 0 {
		frac = strconv.FormatUint(mant, 16)
		frac = strings.Repeat("0", width-len(frac)) + frac
	}
	if !hasPrec {
		frac = strings.TrimRight(frac, "0")
	} else if prec > mantissaDigits {
		frac += strings.Repeat("0", prec-mantissaDigits)
	}

	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(lead, 16))
	if frac != "" {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	sb.WriteByte('p')
	if exp >= 0 {
		sb.WriteByte('+')
	}
	sb.WriteString(strconv.Itoa(exp))
	return sb.String()
}

// localize replaces the ASCII decimal point with the locale's, groups the
// integer digits when asked, and forces a decimal point under '#'. mark is
// the exponent letter, if any.
func localize(s string, mark byte, group, alt bool, loc *Locale) string {
	mant, exp := s, ""
	if i := strings.IndexByte(s, mark); i >= 0 {
		mant, exp = s[:i], s[i:]
	}
	whole, frac, hasDot := strings.Cut(mant, ".")
	if group {
		whole = loc.group(whole)
	}
	var sb strings.Builder
	sb.WriteString(whole)
	if hasDot || alt {
		sb.WriteString(loc.decimal)
	}
	sb.WriteString(frac)
	sb.WriteString(exp)
	return sb.String()
}
