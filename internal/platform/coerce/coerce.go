// Package coerce turns raw CSV cell text into typed values. Blank or unparseable input yields
// nil rather than an error so callers can treat "absent" and "invalid" the same way.
package coerce

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/bytedance/sonic"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	truthy = map[string]bool{"1": true, "true": true, "t": true, "yes": true, "y": true, "on": true}
	falsy  = map[string]bool{"0": true, "false": true, "f": true, "no": true, "n": true, "off": true}
)

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
}

// String trims raw and returns nil when nothing is left.
func String(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}

func Upper(raw string) *string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}
	return &s
}

func Lower(raw string) *string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}
	return &s
}

func ToInt(raw string) *int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// ToInt64 is ToInt for surrogate ids.
func ToInt64(raw string) *int64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func ToFloat(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseBool recognises yes/no style tokens and integers. It returns nil when raw is blank or
// not recognised, which lets callers tell "not given" from an explicit false.
func ParseBool(raw string) *bool {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}
	var v bool
	switch {
	case truthy[s]:
		v = true
	case falsy[s]:
		v = false
	default:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil
		}
		v = n != 0
	}
	return &v
}

// ToBool is ParseBool with a fallback for blank or unrecognised input.
func ToBool(raw string, def bool) bool {
	if v := ParseBool(raw); v != nil {
		return *v
	}
	return def
}

// ToDate parses YYYY-MM-DD and returns midnight UTC.
func ToDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	v, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}
	return &v
}

// ToDateTime parses ISO 8601 timestamps. A trailing Z or an explicit offset is honoured and
// converted to UTC; a value without a zone is taken to be UTC already.
func ToDateTime(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range dateTimeLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			v = v.UTC()
			return &v
		}
	}
	return nil
}

// ToIntList parses a comma or semicolon separated list of integers, skipping bad tokens.
// It never returns an empty slice: no usable item means nil.
func ToIntList(raw string) []int {
	var out []int
	for _, token := range Tokens(raw) {
		if v := ToInt(token); v != nil {
			out = append(out, *v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ToStrList parses a comma or semicolon separated list. Like ToIntList it returns nil rather
// than an empty slice.
func ToStrList(raw string) []string {
	out := Tokens(raw)
	if len(out) == 0 {
		return nil
	}
	return out
}

// Tokens splits a list cell. A cell holding a JSON array of strings or numbers is decoded as
// such; otherwise commas and semicolons separate items. Blank items are dropped.
func Tokens(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		var items []any
		if err := sonic.UnmarshalString(s, &items); err == nil {
			out := make([]string, 0, len(items))
			for _, item := range items {
				var token string
				switch v := item.(type) {
				case string:
					token = strings.TrimSpace(v)
				case float64:
					token = strconv.FormatFloat(v, 'f', -1, 64)
				default:
					continue
				}
				if token != "" {
					out = append(out, token)
				}
			}
			return out
		}
	}

	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := strings.TrimSpace(part); token != "" {
			out = append(out, token)
		}
	}
	return out
}

// FirstInt returns the first run of digits in free text, e.g. "Tier 2" gives 2.
func FirstInt(raw string) *int {
	start := -1
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return ToInt(raw[start:i])
		}
	}
	if start >= 0 {
		return ToInt(raw[start:])
	}
	return nil
}

// Slugify folds accents to ASCII, lowercases, and collapses every run of other characters
// into a single underscore.
func Slugify(raw string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), raw)
	if err != nil {
		folded = raw
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
