package circular

import (
	"encoding/json"
	"math"
)

// Float is a float64 that serialises NaN and infinities as null, so
// "undefined" statistics survive JSON round-trips instead of failing to
// encode.
type Float float64

// IsDefined reports whether the value is a finite number.
func (f Float) IsDefined() bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MarshalJSON encodes non-finite values as null.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.IsDefined() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

// UnmarshalJSON decodes null back into NaN.
func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Float(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}
