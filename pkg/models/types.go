package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ShippingLines is the ordered embedded line list, stored as a JSON column by the SQL drivers
type ShippingLines []ShippingLine

func (s ShippingLines) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	bytes, err := json.Marshal([]ShippingLine(s))
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}

func (s *ShippingLines) Scan(value interface{}) error {
	if value == nil {
		*s = ShippingLines{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported shipping_lines column type %T", value)
	}

	var lines []ShippingLine
	if err := json.Unmarshal(bytes, &lines); err != nil {
		return err
	}
	if lines == nil {
		lines = []ShippingLine{}
	}
	*s = lines
	return nil
}

// Clone returns a copy that shares no backing array with s
func (s ShippingLines) Clone() ShippingLines {
	if s == nil {
		return nil
	}
	out := make(ShippingLines, len(s))
	copy(out, s)
	return out
}
