package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidSign = errors.New("sign must be either \"positive\" or \"negative\"")

// Sign is the polarity of an association between a transaction and a
// category, budget or bill. It is independent of the transaction's own
// source and destination.
type Sign int8

const (
	Positive Sign = 1
	Negative Sign = -1
)

// Valid reports if the sign is Positive or Negative.
func (s Sign) Valid() bool {
	return s == Positive || s == Negative
}

// Apply returns c with the sign applied.
func (s Sign) Apply(c Currency) Currency {
	if s == Negative {
		return c.Neg()
	}
	return c
}

// String returns "positive" or "negative".
func (s Sign) String() string {
	switch s {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	}
	return fmt.Sprintf("Sign(%d)", int8(s))
}

// ParseSign parses the output of Sign.String.
func ParseSign(s string) (Sign, error) {
	switch s {
	case "positive":
		return Positive, nil
	case "negative":
		return Negative, nil
	}
	return 0, fmt.Errorf("%w, got %q", ErrInvalidSign, s)
}

// MarshalJSON implements the json.Marshaler interface.
func (s Sign) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, ErrInvalidSign
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Sign) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	parsed, err := ParseSign(value)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}

// Scan writes the value from the database.
func (s *Sign) Scan(value interface{}) error {
	var i int64
	switch v := value.(type) {
	case int64:
		i = v
	case int32:
		i = int64(v)
	case int:
		i = int64(v)
	default:
		return fmt.Errorf("cannot scan %T into Sign", value)
	}

	*s = Sign(i)
	if !s.Valid() {
		return fmt.Errorf("%w, got %d", ErrInvalidSign, i)
	}
	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (s Sign) Value() (driver.Value, error) {
	return int64(s), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Sign) GormDataType() string {
	return "smallint"
}
