// Package sanitize provides the per-field normalizers of the settings update
// pipeline. Every function here is a pure transformation of one value shape:
// it coerces raw input into a typed value or records a field-tagged error,
// and it never enforces cross-field business rules. Sanitization is total —
// any input, including a missing or malformed field, produces either a typed
// value or an accumulated error, never a panic.
package sanitize

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/localewatch/localewatch/internal/constants"
)

var (
	// localePattern keeps the characters allowed in a locale code.
	localePattern = regexp.MustCompile(`[^a-z0-9_-]`)

	// slugPattern keeps the characters allowed in a project type or slug.
	slugPattern = regexp.MustCompile(`[^a-z0-9._-]`)

	// ciphertextPattern matches the base64 alphabet. A long value made up
	// entirely of these characters is treated as an encrypted secret.
	ciphertextPattern = regexp.MustCompile(`^[A-Za-z0-9+/=]+$`)

	// fixedTimePattern matches a 24h HH:MM clock time.
	fixedTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// Bool coerces a raw value to a boolean via truthiness. Missing values,
// empty strings, zero numbers and the usual negative words are false;
// everything else is true.
func Bool(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "", "0", "false", "no", "off":
			return false
		}
		return true
	default:
		return false
	}
}

// Int coerces a raw value to an integer, reporting whether the coercion
// succeeded. Strings are parsed; floats are truncated.
func Int(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case float64:
		return int(val), true
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// BoundedInt coerces a raw value to an integer and rejects values outside
// [min, max] with a field error. A nil value yields the default without an
// error. This is the hard-bounds policy used for timeouts and thresholds;
// out-of-range input is surfaced to the caller, never silently clamped.
func BoundedInt(errs *FieldErrors, field string, v any, min, max, def int) int {
	if v == nil {
		return def
	}

	n, ok := Int(v)
	if !ok {
		errs.Add(field, "must be a number")
		return def
	}
	if n < min || n > max {
		errs.Add(field, fmt.Sprintf("must be between %d and %d", min, max))
		return def
	}

	return n
}

// NonNegativeInt coerces a raw value to an integer and rejects negatives with
// a field error. Used for count thresholds that have a floor but no ceiling.
func NonNegativeInt(errs *FieldErrors, field string, v any, def int) int {
	if v == nil {
		return def
	}

	n, ok := Int(v)
	if !ok {
		errs.Add(field, "must be a number")
		return def
	}
	if n < 0 {
		errs.Add(field, "must be zero or greater")
		return def
	}

	return n
}

// FreeInt coerces a raw value to an integer with no range enforcement.
// Range rules for these fields belong to cross-field validation, where they
// can depend on other fields (a disabled feature tolerates a zero interval).
func FreeInt(v any, def int) int {
	if v == nil {
		return def
	}
	if n, ok := Int(v); ok {
		return n
	}
	return def
}

// Enum returns the supplied value if it is one of the allowed choices and the
// documented default otherwise. An unknown choice is never an error.
func Enum(v any, allowed []string, def string) string {
	s, ok := v.(string)
	if !ok {
		return def
	}
	s = strings.ToLower(strings.TrimSpace(s))
	for _, choice := range allowed {
		if s == choice {
			return s
		}
	}
	return def
}

// Label trims a free-text value and caps its length.
func Label(v any, maxLen int) string {
	s, _ := v.(string)
	s = strings.TrimSpace(s)
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}

// Locale normalizes a locale code: lowercased, stripped of anything outside
// [a-z0-9_-], truncated to the maximum length. An unsalvageable value yields
// the empty string.
func Locale(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = localePattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "")
	if len(s) > constants.MaxLocaleCodeLength {
		s = s[:constants.MaxLocaleCodeLength]
	}
	return s
}

// LocaleList normalizes a list of locale codes, dropping entries that
// sanitize to empty and deduplicating the rest while preserving order.
func LocaleList(v any) []string {
	var raw []any
	switch list := v.(type) {
	case []any:
		raw = list
	case []string:
		raw = make([]any, len(list))
		for i, s := range list {
			raw[i] = s
		}
	default:
		return nil
	}

	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		code := Locale(item)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

// Slug normalizes a project type or slug component.
func Slug(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return slugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "")
}

// IsCiphertext reports whether a stored value matches the ciphertext shape:
// longer than the detection threshold and made up entirely of base64 alphabet
// characters. This heuristic is the only thing distinguishing "already
// encrypted" from raw user input, so a matching value must pass through
// sanitization byte-for-byte unchanged.
func IsCiphertext(s string) bool {
	return len(s) > constants.MinCiphertextLength && ciphertextPattern.MatchString(s)
}

// SecretURL sanitizes a secret webhook URL field. Ciphertext-shaped values
// pass through untouched; the empty string is a valid shape (the webhook is
// simply unconfigured); anything else must parse as an http(s) URL with a
// host or a field error is recorded. A short garbage string that is neither
// ciphertext nor a URL falls through to URL validation and errors.
func SecretURL(errs *FieldErrors, field string, v any) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return ""
	}

	if IsCiphertext(s) {
		return s
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}

	u, err := url.Parse(trimmed)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs.Add(field, "must be a valid http or https URL")
		return ""
	}

	return trimmed
}

// Milestones normalizes a milestone list. Input may be a native list or a
// comma-separated string; values are filtered to the 0–100 range,
// deduplicated and sorted ascending. Unparseable entries are dropped, never
// an error.
func Milestones(v any) []int {
	var candidates []int

	switch val := v.(type) {
	case string:
		for _, part := range strings.Split(val, ",") {
			if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				candidates = append(candidates, n)
			}
		}
	case []any:
		for _, item := range val {
			if n, ok := Int(item); ok {
				candidates = append(candidates, n)
			}
		}
	case []int:
		candidates = val
	default:
		return []int{}
	}

	seen := make(map[int]bool, len(candidates))
	out := make([]int, 0, len(candidates))
	for _, n := range candidates {
		if n < constants.MinMilestone || n > constants.MaxMilestone || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Ints(out)

	return out
}

// EventTypes filters a raw list down to the known notification event
// categories, deduplicated, preserving input order. Unknown entries are
// dropped without error, matching the enumerated-choice policy.
func EventTypes(v any) []string {
	allowed := map[string]bool{
		constants.EventNewStrings:       true,
		constants.EventCompletionUpdate: true,
		constants.EventNeedsAttention:   true,
		constants.EventMilestone:        true,
	}

	var raw []any
	switch list := v.(type) {
	case []any:
		raw = list
	case []string:
		raw = make([]any, len(list))
		for i, s := range list {
			raw[i] = s
		}
	default:
		return []string{}
	}

	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if !allowed[s] || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// FixedTime normalizes a 24h HH:MM clock time, falling back to the
// documented default when the value is malformed.
func FixedTime(v any) string {
	s, ok := v.(string)
	if !ok {
		return constants.DefaultDigestFixedTime
	}
	s = strings.TrimSpace(s)
	if !fixedTimePattern.MatchString(s) {
		return constants.DefaultDigestFixedTime
	}
	return s
}
