package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a []string persisted as a jsonb array.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	return string(b), err
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// ColorImages maps a color name to its image URLs, persisted as jsonb.
type ColorImages map[string][]string

func (m ColorImages) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(map[string][]string(m))
	return string(b), err
}

func (m *ColorImages) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// OrderItems is the denormalized line-item snapshot stored on an order.
type OrderItems []OrderItem

func (l OrderItems) Value() (driver.Value, error) {
	b, err := json.Marshal([]OrderItem(l))
	return string(b), err
}

func (l *OrderItems) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
