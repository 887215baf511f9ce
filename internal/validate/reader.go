package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

const (
	MsgRequired       = "This field is required."
	MsgInvalid        = "Enter a valid value."
	MsgDigitsOnly     = "Must contain only digits."
	MsgInvalidDate    = "Enter a valid date (YYYY-MM-DD)."
	MsgInvalidNumber  = "Enter a whole number."
	MsgInvalidDecimal = "Enter a number."
	MsgInvalidChoice  = "Select a valid choice."
	MsgInvalidEmail   = "Enter a valid email address."
)

// Currency limits: twelve digits in total, two of them decimals.
var maxCurrency = decimal.New(1, 10)

var emailValidator = validator.New()

// Input is a raw field map as supplied by the boundary layer.
type Input map[string]any

// Has reports whether field is present with a non-nil value.
func (in Input) Has(field string) bool {
	v, ok := in[field]
	return ok && v != nil
}

// Clone returns a shallow copy of in.
func (in Input) Clone() Input {
	out := make(Input, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Reader extracts typed values from an Input and records every failure.
// It never stops at the first error.
type Reader struct {
	in   Input
	errs *Errors
}

// NewReader wraps in.
func NewReader(in Input) *Reader {
	return &Reader{in: in, errs: &Errors{}}
}

// Errors returns the collected errors.
func (r *Reader) Errors() *Errors {
	return r.errs
}

// Valid reports whether field has no recorded error.
func (r *Reader) Valid(fields ...string) bool {
	for _, f := range fields {
		if r.errs.Has(f) {
			return false
		}
	}
	return true
}

// Text returns a trimmed, NFC-normalized string.
func (r *Reader) Text(field string, required bool, maxLen int) string {
	s, ok := r.str(field)
	if !ok {
		return ""
	}
	if s == "" {
		if required {
			r.errs.Add(field, MsgRequired)
		}
		return ""
	}
	if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
		r.errs.Add(field, fmt.Sprintf("Ensure this value has at most %d characters.", maxLen))
		return ""
	}
	return s
}

// Digits returns a string composed only of ASCII digits.
func (r *Reader) Digits(field string, required bool, maxLen int) string {
	s := r.Text(field, required, maxLen)
	if s == "" {
		return ""
	}
	if !IsDigits(s) {
		r.errs.Add(field, MsgDigitsOnly)
		return ""
	}
	return s
}

// Email returns a syntactically valid email address.
func (r *Reader) Email(field string, required bool, maxLen int) string {
	s := r.Text(field, required, maxLen)
	if s == "" {
		return ""
	}
	if err := emailValidator.Var(s, "email"); err != nil {
		r.errs.Add(field, MsgInvalidEmail)
		return ""
	}
	return strings.ToLower(s)
}

// Choice returns a value from allowed, or def when absent.
func (r *Reader) Choice(field string, required bool, allowed []string, def string) string {
	s := r.Text(field, required && def == "", 0)
	if s == "" {
		if r.errs.Has(field) {
			return ""
		}
		return def
	}
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	r.errs.Add(field, MsgInvalidChoice)
	return ""
}

// Date returns a calendar date at UTC midnight.
func (r *Reader) Date(field string, required bool) *time.Time {
	v, present := r.in[field]
	if !present || v == nil || v == "" {
		if required {
			r.errs.Add(field, MsgRequired)
		}
		return nil
	}

	switch val := v.(type) {
	case time.Time:
		d := DateOf(val)
		return &d
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			if required {
				r.errs.Add(field, MsgRequired)
			}
			return nil
		}
		if t, err := time.Parse(DateLayout, s); err == nil {
			return &t
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			d := DateOf(t)
			return &d
		}
	}
	r.errs.Add(field, MsgInvalidDate)
	return nil
}

// Int returns a whole number. ok is false when absent or invalid.
func (r *Reader) Int(field string, required bool) (int, bool) {
	v, present := r.in[field]
	if !present || v == nil || v == "" {
		if required {
			r.errs.Add(field, MsgRequired)
		}
		return 0, false
	}

	n, ok := toInt(v)
	if !ok {
		r.errs.Add(field, MsgInvalidNumber)
		return 0, false
	}
	return n, true
}

// IntRange returns a whole number within [min, max].
func (r *Reader) IntRange(field string, required bool, min, max int) (int, bool) {
	n, ok := r.Int(field, required)
	if !ok {
		return 0, false
	}
	if n < min || n > max {
		r.errs.Add(field, fmt.Sprintf("Must be between %d and %d.", min, max))
		return 0, false
	}
	return n, true
}

// Currency returns a decimal with at most two decimal places and ten
// integer digits, rounded to cents.
func (r *Reader) Currency(field string, required bool) (decimal.Decimal, bool) {
	v, present := r.in[field]
	if !present || v == nil || v == "" {
		if required {
			r.errs.Add(field, MsgRequired)
		}
		return decimal.Zero, false
	}

	d, ok := toDecimal(v)
	if !ok {
		r.errs.Add(field, MsgInvalidDecimal)
		return decimal.Zero, false
	}
	if !d.Equal(d.Round(2)) {
		r.errs.Add(field, "Ensure that there are no more than 2 decimal places.")
		return decimal.Zero, false
	}
	if d.Abs().GreaterThanOrEqual(maxCurrency) {
		r.errs.Add(field, "Ensure that there are no more than 12 digits in total.")
		return decimal.Zero, false
	}
	return d.Round(2), true
}

// IDs returns a de-duplicated list of identifiers. It accepts a list or a
// comma-separated string.
func (r *Reader) IDs(field string) []string {
	v, present := r.in[field]
	if !present || v == nil {
		return nil
	}

	var raw []string
	switch val := v.(type) {
	case []string:
		raw = val
	case []any:
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				r.errs.Add(field, MsgInvalid)
				return nil
			}
			raw = append(raw, s)
		}
	case string:
		raw = strings.Split(val, ",")
	default:
		r.errs.Add(field, MsgInvalid)
		return nil
	}

	seen := make(map[string]bool, len(raw))
	ids := make([]string, 0, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}
	return ids
}

func (r *Reader) str(field string) (string, bool) {
	v, present := r.in[field]
	if !present || v == nil {
		return "", true
	}
	s, ok := toString(v)
	if !ok {
		r.errs.Add(field, MsgInvalid)
		return "", false
	}
	return norm.NFC.String(strings.TrimSpace(s)), true
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// DateOf truncates t to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders an optional date in DateLayout; nil becomes nil.
func FormatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(DateLayout)
}

func toString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case json.Number:
		return val.String(), true
	case fmt.Stringer:
		return val.String(), true
	}
	return "", false
}

func toInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int32:
		return int(val), true
	case int64:
		return int(val), true
	case uint:
		return int(val), true
	case uint64:
		return int(val), true
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) || math.IsNaN(val) {
			return 0, false
		}
		return int(val), true
	case json.Number:
		n, err := val.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		return n, err == nil
	}
	return 0, false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, true
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero, false
		}
		return *val, true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case float64:
		if math.IsInf(val, 0) || math.IsNaN(val) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(val), true
	case float32:
		return decimal.NewFromFloat32(val), true
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		return d, err == nil
	}
	return decimal.Zero, false
}
