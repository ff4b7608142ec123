package printf

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Locale carries the numeric conventions and charset a sink renders with.
// A Locale is immutable once built and may be shared between sinks and
// goroutines.
type Locale struct {
	name     string
	decimal  string
	sep      string
	grouping []int
	cs       *charset
}

// LocaleConfig describes a locale in configuration files. Fields left
// empty are filled from the CLDR data of Language when it is set, and from
// the POSIX conventions otherwise.
type LocaleConfig struct {
	Name         string  `yaml:"name" toml:"name"`
	Language     string  `yaml:"language" toml:"language"`
	DecimalPoint string  `yaml:"decimal_point" toml:"decimal_point"`
	ThousandsSep *string `yaml:"thousands_sep" toml:"thousands_sep"`
	Grouping     []int   `yaml:"grouping" toml:"grouping"`
	Charset      string  `yaml:"charset" toml:"charset"`
}

var (
	// Neutral is the default locale: '.' decimal point, ',' thousands
	// separator in groups of three, UTF-8 narrow text.
	Neutral = &Locale{name: "neutral", decimal: ".", sep: ",", grouping: []int{3}, cs: utf8Charset}

	// POSIX mirrors the C locale: no thousands separator and ASCII narrow
	// text.
	POSIX = &Locale{name: "POSIX", decimal: ".", cs: asciiCharset}
)

// NewLocale builds a locale from its configuration.
func NewLocale(cfg LocaleConfig) (*Locale, error) {
	base := POSIX
	if cfg.Language != "" {
		tag, err := language.Parse(cfg.Language)
		if err != nil {
			return nil, errors.Wrapf(err, "locale %q: language", cfg.Name)
		}
		base = LocaleFor(tag)
	}
	l := &Locale{
		name:     cfg.Name,
		decimal:  base.decimal,
		sep:      base.sep,
		grouping: base.grouping,
		cs:       utf8Charset,
	}
	if l.name == "" {
		l.name = base.name
	}
	if cfg.DecimalPoint != "" {
		l.decimal = cfg.DecimalPoint
	}
	if cfg.ThousandsSep != nil {
		l.sep = *cfg.ThousandsSep
	}
	if cfg.Grouping != nil {
		l.grouping = append([]int(nil), cfg.Grouping...)
	}
	if cfg.Charset != "" {
		cs, err := lookupCharset(cfg.Charset)
		if err != nil {
			return nil, errors.Wrapf(err, "locale %q", l.name)
		}
		l.cs = cs
	}
	return l, nil
}

// LocaleFor derives a UTF-8 locale from the CLDR number formatting data
// of tag.
func LocaleFor(tag language.Tag) *Locale {
	p := message.NewPrinter(tag)
	l := &Locale{name: tag.String(), decimal: ".", cs: utf8Charset}
	if d := nonDigits(p.Sprintf("%.1f", 0.5)); len(d) > 0 {
		l.decimal = d[0]
	}
	l.sep, l.grouping = groupingOf(p.Sprintf("%d", 123456789))
	return l
}

// nonDigits returns the runs of non-digit characters in s.
func nonDigits(s string) []string {
	var runs []string
	var cur strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			if cur.Len() > 0 {
				runs = append(runs, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		runs = append(runs, cur.String())
	}
	return runs
}

// groupingOf recovers the separator and group sizes from a grouped
// rendering of a nine digit number.
func groupingOf(s string) (string, []int) {
	seps := nonDigits(s)
	if len(seps) == 0 {
		return "", nil
	}
	var sizes []int
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
			continue
		}
		if n > 0 {
			sizes = append(sizes, n)
		}
		n = 0
	}
	sizes = append(sizes, n)
	last := sizes[len(sizes)-1]
	if len(sizes) >= 3 && sizes[len(sizes)-2] != last {
		return seps[0], []int{last, sizes[len(sizes)-2]}
	}
	return seps[0], []int{last}
}

// Name returns the locale name.
func (l *Locale) Name() string { return l.name }

// DecimalPoint returns the radix character.
func (l *Locale) DecimalPoint() string { return l.decimal }

// ThousandsSep returns the grouping separator; empty when the locale does
// not group.
func (l *Locale) ThousandsSep() string { return l.sep }

// Grouping returns the group sizes from the right. The last size repeats;
// a size of zero or less ends grouping.
func (l *Locale) Grouping() []int { return append([]int(nil), l.grouping...) }

// Charset returns the narrow text charset name.
func (l *Locale) Charset() string { return l.cs.name }

// group inserts the thousands separator into a run of ASCII digits. A
// locale with a separator but no sizes groups by three.
func (l *Locale) group(digits string) string {
	if l.sep == "" {
		return digits
	}
	pattern := l.grouping
	if len(pattern) == 0 {
		pattern = []int{3}
	}
	var parts []string
	pos, idx := len(digits), 0
	for {
		size := pattern[idx]
		if size <= 0 || pos <= size {
			break
		}
		parts = append(parts, digits[pos-size:pos])
		pos -= size
		if idx < len(pattern)-1 {
			idx++
		}
	}
	parts = append(parts, digits[:pos])
	var sb strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		sb.WriteString(parts[i])
		if i > 0 {
			sb.WriteString(l.sep)
		}
	}
	return sb.String()
}

type localeFile struct {
	Locales []LocaleConfig `yaml:"locales" toml:"locales"`
}

// LoadLocales reads locale definitions from YAML:
//
//	locales:
//	  - name: de_DE.ISO-8859-1
//	    decimal_point: ","
//	    thousands_sep: "."
//	    grouping: [3]
//	    charset: ISO-8859-1
//	  - name: hi_IN
//	    language: hi
func LoadLocales(r io.Reader) (map[string]*Locale, error) {
	var f localeFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode yaml locales")
	}
	return buildLocales(f.Locales)
}

// LoadLocalesTOML reads locale definitions from TOML, one [[locales]]
// table per locale, with the keys LoadLocales accepts.
func LoadLocalesTOML(r io.Reader) (map[string]*Locale, error) {
	var f localeFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decode toml locales")
	}
	return buildLocales(f.Locales)
}

// LoadLocaleFile reads a .yaml, .yml or .toml locale file.
func LoadLocaleFile(path string) (map[string]*Locale, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open locale file")
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadLocales(f)
	case ".toml":
		return LoadLocalesTOML(f)
	default:
		return nil, errors.Newf("locale file %q: unknown extension", path)
	}
}

func buildLocales(cfgs []LocaleConfig) (map[string]*Locale, error) {
	out := make(map[string]*Locale, len(cfgs))
	for i, cfg := range cfgs {
		if cfg.Name == "" {
			return nil, errors.Newf("locale #%d: missing name", i+1)
		}
		if _, dup := out[cfg.Name]; dup {
			return nil, errors.Newf("locale %q: defined twice", cfg.Name)
		}
		l, err := NewLocale(cfg)
		if err != nil {
			return nil, err
		}
		out[cfg.Name] = l
	}
	return out, nil
}
