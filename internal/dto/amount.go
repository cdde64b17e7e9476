package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxIntegerDigits is how many digits a decimal(12,2) money column holds
// before the decimal point.
const MaxIntegerDigits = 10

// minExponent rejects inputs like 1e-999999999 whose expansion would be huge.
const minExponent = -64

// Amount is a money input as it arrives from the register form: a JSON number
// or a numeric string. Blank strings and null leave it unset, so optional
// fields default to zero and required ones fail validation.
type Amount struct {
	raw   string
	set   bool
	valid bool
	value decimal.Decimal
}

// NewAmount builds a set, valid Amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{raw: d.String(), set: true, valid: true, value: d}
}

// ParseAmount never fails; a non-numeric input yields a set but invalid Amount.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.Exponent() < minExponent {
		return Amount{raw: s, set: true}
	}
	return Amount{raw: s, set: true, valid: true, value: d}
}

func (a Amount) IsSet() bool { return a.set }

func (a Amount) IsValid() bool { return a.valid }

func (a Amount) Raw() string { return a.raw }

// IntegerDigits is the number of digits before the decimal point, computed
// without expanding the exponent. Zero for zero, unset or invalid amounts.
func (a Amount) IntegerDigits() int64 {
	if !a.valid || a.value.IsZero() {
		return 0
	}
	return int64(a.value.NumDigits()) + int64(a.value.Exponent())
}

// Decimal returns the parsed value, or zero when unset or invalid.
func (a Amount) Decimal() decimal.Decimal {
	if !a.valid {
		return decimal.Zero
	}
	return a.value
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*a = Amount{}
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = ParseAmount(s)
		return nil
	case len(b) > 0 && (b[0] == '-' || (b[0] >= '0' && b[0] <= '9')):
		*a = ParseAmount(string(b))
		return nil
	default:
		// true, {...}, [...]: keep the literal so validation names the field.
		*a = Amount{raw: string(b), set: true}
		return nil
	}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	if !a.valid {
		return json.Marshal(a.raw)
	}
	return json.Marshal(a.value.String())
}
