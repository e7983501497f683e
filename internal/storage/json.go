// ABOUTME: Helpers for list-valued columns serialized as JSON text.
// ABOUTME: Nil slices map to SQL NULL so absent fields stay absent.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// encodeList marshals a slice for a NOT NULL json column. A nil slice is
// stored as an empty list.
func encodeList[T any](v []T) (string, error) {
	if v == nil {
		v = []T{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

// encodeNullableList marshals a slice for a nullable json column,
// preserving the nil/absent distinction.
func encodeNullableList[T any](v []T) (any, error) {
	if v == nil {
		return nil, nil
	}
	s, err := encodeList(v)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// decodeList unmarshals a NOT NULL json column.
func decodeList[T any](s string, dst *[]T) error {
	if err := json.Unmarshal([]byte(s), dst); err != nil {
		return fmt.Errorf("decode list: %w", err)
	}
	return nil
}

// decodeNullableList unmarshals a nullable json column; NULL leaves the
// destination nil.
func decodeNullableList[T any](ns sql.NullString, dst *[]T) error {
	if !ns.Valid {
		*dst = nil
		return nil
	}
	return decodeList(ns.String, dst)
}
