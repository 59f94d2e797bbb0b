// Package money implements fixed-point currency amounts split into
// whole units and sub-unit nanos, mirroring google.type.Money as it
// appears on the commerce wire.
package money

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// NanosPerUnit is the number of nano units in one whole currency unit.
const NanosPerUnit = 1_000_000_000

// Money is an amount of a single currency. Units and Nanos carry the
// same sign when both are nonzero; Nanos stays in [0, NanosPerUnit)
// for the non-negative amounts the storefront deals in.
type Money struct {
	CurrencyCode string
	Units        int64
	Nanos        int32
}

// Normalized builds a Money from raw unit/nano tallies, folding nano
// overflow into units so that Nanos lands in [0, NanosPerUnit).
func Normalized(currencyCode string, units, nanos int64) Money {
	units += nanos / NanosPerUnit
	nanos %= NanosPerUnit
	if nanos < 0 {
		nanos += NanosPerUnit
		units--
	}
	return Money{CurrencyCode: currencyCode, Units: units, Nanos: int32(nanos)}
}

// Add returns m + other, normalized. The currency code of m wins when
// both are set; an empty code defers to the other operand.
func (m Money) Add(other Money) Money {
	code := m.CurrencyCode
	if code == "" {
		code = other.CurrencyCode
	}
	return Normalized(code, m.Units+other.Units, int64(m.Nanos)+int64(other.Nanos))
}

// Mul returns m scaled by n, normalized.
func (m Money) Mul(n int64) Money {
	return Normalized(m.CurrencyCode, m.Units*n, int64(m.Nanos)*n)
}

// IsZero reports whether the amount is zero, ignoring the currency code.
func (m Money) IsZero() bool {
	return m.Units == 0 && m.Nanos == 0
}

// Float64 converts the amount to a float. Display only; arithmetic
// stays in integer units and nanos.
func (m Money) Float64() float64 {
	return float64(m.Units) + float64(m.Nanos)/NanosPerUnit
}

// Decimal renders the amount as a plain fixed 2-decimal string for URL
// encoding, rounding half up on the third decimal.
func (m Money) Decimal() string {
	cents := (int64(m.Nanos) + NanosPerUnit/200) / (NanosPerUnit / 100)
	units := m.Units + cents/100
	cents %= 100
	return fmt.Sprintf("%d.%02d", units, cents)
}

type moneyWire struct {
	CurrencyCode string          `json:"currencyCode"`
	Units        json.RawMessage `json:"units"`
	Nanos        json.RawMessage `json:"nanos"`
}

// UnmarshalJSON accepts both JSON shapes the Connect protocol emits:
// int64 fields arrive as quoted decimal strings under protojson and as
// bare numbers from other encoders.
func (m *Money) UnmarshalJSON(b []byte) error {
	var w moneyWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	units, err := flexInt64(w.Units)
	if err != nil {
		return fmt.Errorf("money units: %w", err)
	}
	nanos, err := flexInt64(w.Nanos)
	if err != nil {
		return fmt.Errorf("money nanos: %w", err)
	}
	m.CurrencyCode = w.CurrencyCode
	m.Units = units
	m.Nanos = int32(nanos)
	return nil
}

// MarshalJSON emits the protojson shape: units as a quoted string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		CurrencyCode string `json:"currencyCode"`
		Units        string `json:"units"`
		Nanos        int32  `json:"nanos"`
	}{m.CurrencyCode, strconv.FormatInt(m.Units, 10), m.Nanos})
}

func flexInt64(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		if s == "" {
			return 0, nil
		}
		return strconv.ParseInt(s, 10, 64)
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return n, nil
}
