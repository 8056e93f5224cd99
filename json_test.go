package bser

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromJSONPrimitives(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Value
	}{
		{"null", `null`, Null{}},
		{"true", `true`, Bool(true)},
		{"false", `false`, Bool(false)},
		{"string", `"hello"`, String("hello")},
		{"int8", `5`, Int8(5)},
		{"int16", `1000`, Int16(1000)},
		{"int32", `70000`, Int32(70000)},
		{"int64", `5000000000`, Int64(5000000000)},
		{"negative int8", `-5`, Int8(-5)},
		{"real with decimal point", `1.5`, Real(1.5)},
		{"real from exponent", `1e3`, Real(1000)},
		// A whole-number float is still a Real: the narrowing decision
		// is made from the token text, not the parsed value.
		{"whole-number real", `1.0`, Real(1.0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FromJSON([]byte(tc.in))
			if err != nil {
				t.Fatalf("FromJSON(%q): %v", tc.in, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("FromJSON(%q) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

func TestFromJSONArray(t *testing.T) {
	got, err := FromJSON([]byte(`[1, "two", true, null]`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	want := Array{Int8(1), String("two"), Bool(true), Null{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFromJSONObjectPreservesDocumentOrder(t *testing.T) {
	got, err := FromJSON([]byte(`{"foo": 1, "bar": 2}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	obj, ok := got.(*Object)
	if !ok {
		t.Fatalf("FromJSON returned %T, want *Object", got)
	}
	want := []string{"foo", "bar"}
	if diff := cmp.Diff(want, obj.Keys); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestFromJSONNestedObject(t *testing.T) {
	got, err := FromJSON([]byte(`{"a": {"b": [1, 2, 3]}}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	outer := got.(*Object)
	inner, ok := outer.Get("a")
	if !ok {
		t.Fatalf("missing key a")
	}
	innerObj := inner.(*Object)
	bVal, ok := innerObj.Get("b")
	if !ok {
		t.Fatalf("missing key b")
	}
	want := Array{Int8(1), Int8(2), Int8(3)}
	if diff := cmp.Diff(want, bVal); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFromJSONRejectsTrailingContent(t *testing.T) {
	_, err := FromJSON([]byte(`1 2`))
	if err == nil {
		t.Fatal("FromJSON with trailing content: want error, got nil")
	}
}

func TestFromJSONRejectsNonStringKey(t *testing.T) {
	// json.Decoder itself rejects non-string object keys at the
	// tokenizer level, so this should fail during parsing.
	_, err := FromJSON([]byte(`{1: 2}`))
	if err == nil {
		t.Fatal("FromJSON with non-string key: want error, got nil")
	}
}

func TestFromJSONToBSEREncodeRoundTrip(t *testing.T) {
	val, err := FromJSON([]byte(`{"name": "buck", "count": 42, "active": true}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, val, binary.LittleEndian); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dec := NewDecoder(Unsorted, WithByteOrder(binary.LittleEndian))
	got, err := dec.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(val, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
