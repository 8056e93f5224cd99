package bser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// FromJSON converts a single JSON document into a [Value] tree, for
// use by cmd/bserdump's --encode-json flag and by tests that want
// readable fixtures instead of hand-written hex.
//
// The conversion is lossy in the direction JSON is lossier than BSER:
// JSON objects map to [Object] with [Unsorted] ordering (document
// order); JSON arrays map to [Array]; JSON strings, booleans, and null
// map to [String], [Bool], and [Null] directly. JSON numbers map to
// the narrowest Int8/16/32/64 that fits when the token has no decimal
// point or exponent, and to [Real] otherwise — inspecting the raw
// token text rather than the decoded float64, so "1" and "1.0" decode
// to different BSER types even though they are numerically equal.
//
// Grounded on map-protocol-map1/json_adapter.go's decodeJSONValue,
// narrowed to BSER's type set: this package drops MAP1's duplicate-key
// and JSON-pointer-projection concerns, which have no BSER analog.
func FromJSON(raw []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	val, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("bser: FromJSON: trailing content after root value")
	}
	return val, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("bser: FromJSON: %w", err)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return nil, fmt.Errorf("bser: FromJSON: unexpected delimiter %q", t)
		}
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return jsonNumberToValue(t)
	case nil:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("bser: FromJSON: unexpected JSON token type %T", tok)
	}
}

func decodeJSONObject(dec *json.Decoder) (Value, error) {
	var entries []objectEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("bser: FromJSON: reading object key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("bser: FromJSON: object key is not a string")
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, objectEntry{key: key, val: val})
	}
	if _, err := dec.Token(); err != nil { // consume closing '}'
		return nil, fmt.Errorf("bser: FromJSON: missing '}': %w", err)
	}
	return newObject(entries, Unsorted), nil
}

func decodeJSONArray(dec *json.Decoder) (Value, error) {
	arr := make(Array, 0, 8)
	for dec.More() {
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil { // consume closing ']'
		return nil, fmt.Errorf("bser: FromJSON: missing ']': %w", err)
	}
	return arr, nil
}

// jsonNumberToValue picks the narrowest BSER integer type that fits n,
// or Real when n has a decimal point or exponent — the same
// raw-token inspection map-protocol-map1/json_adapter.go's
// convertJSONNumber performs, generalized from MAP1's always-int64
// INTEGER type to BSER's four integer widths.
func jsonNumberToValue(n json.Number) (Value, error) {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("bser: FromJSON: invalid number %q: %w", s, err)
		}
		return Real(f), nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bser: FromJSON: integer out of range %q: %w", s, err)
	}

	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return Int8(v), nil
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return Int16(v), nil
	case v >= math.MinInt32 && v <= math.MaxInt32:
		return Int32(v), nil
	default:
		return Int64(v), nil
	}
}
