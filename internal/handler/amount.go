package handler

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/numfmt"
)

// Amount accepts a JSON number or a string typed the way the form shows it,
// "100.000" or "1.050,50".
type Amount struct {
	Value decimal.Decimal
	Set   bool
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := numfmt.Parse(s)
		if err != nil {
			return err
		}
		*a = Amount{Value: d, Set: true}
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return numfmt.ErrInvalidNumber
	}
	*a = Amount{Value: d, Set: true}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Set {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value.String())
}

func (a Amount) Ptr() *decimal.Decimal {
	if !a.Set {
		return nil
	}
	v := a.Value
	return &v
}
