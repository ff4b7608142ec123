package printf

import (
	"strconv"
	"strings"
)

// number is a rendered numeric conversion, split at the point where zero
// padding goes.
type number struct {
	prefix string // sign and radix prefix
	body   string // digits, separators, exponent
	zeroOK bool   // whether the '0' flag applies
}

func signOf(neg bool, flags Flags) string {
	switch {
	case neg:
		return "-"
	case flags.Has(FlagPlus):
		return "+"
	case flags.Has(FlagSpace):
		return " "
	default:
		return ""
	}
}

// formatInteger renders d, i, u, o, x and X. Precision is a minimum digit
// count; precision 0 with value 0 renders no digits. Grouping applies to
// decimal conversions only, and the separators count toward the precision.
func formatInteger(d Directive, prec int, hasPrec bool, neg bool, mag uint64, loc *Locale) number {
	conv := d.conv()
	base := 10
	switch conv {
	case 'o':
		base = 8
	case 'x', 'X':
		base = 16
	}

	digits := strconv.FormatUint(mag, base)
	if conv == 'X' {
		digits = strings.ToUpper(digits)
	}
	if hasPrec && prec == 0 && mag == 0 {
		digits = ""
	}
	if base == 10 && d.Flags.Has(FlagGroup) {
		digits = loc.group(digits)
	}
	zeros := 0
	if hasPrec && len(digits) < prec {
		zeros = prec - len(digits)
	}
	body := strings.Repeat("0", zeros) + digits

	var prefix string
	switch conv {
	case 'd', 'i':
		prefix = signOf(neg, d.Flags)
	case 'o':
		if d.Flags.Has(FlagAlt) && !strings.HasPrefix(body, "0") {
			body = "0" + body
		}
	case 'x':
		if d.Flags.Has(FlagAlt) && mag != 0 {
			prefix = "0x"
		}
	case 'X':
		if d.Flags.Has(FlagAlt) && mag != 0 {
			prefix = "0X"
		}
	}
	return number{prefix: prefix, body: body, zeroOK: !hasPrec}
}
