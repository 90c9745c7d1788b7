// Package codec converts records to and from their JSON text form.
package codec

import "encoding/json"

// Encode returns the compact JSON form of v.
func Encode[T any](v T) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses text into a T. It reports false instead of an error so the
// caller decides whether bad input means "no data" or a fatal condition.
func Decode[T any](text string) (T, bool) {
	var v T
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}
