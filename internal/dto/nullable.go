package dto

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// NullableID distinguishes an absent JSON field from an explicit null.
// Set is true whenever the field appeared in the payload.
type NullableID struct {
	Set   bool
	Value *int64
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	n.Value = &id
	return nil
}

func (n NullableID) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// nullableIDValue exposes the id to validator rules; a null or absent id
// validates as empty.
func nullableIDValue(field reflect.Value) any {
	n, ok := field.Interface().(NullableID)
	if !ok || n.Value == nil {
		return nil
	}
	return *n.Value
}
