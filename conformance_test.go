package bser

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// conformance_test.go drives bser_vectors.json, a flat JSON description
// of decode scenarios, rather than hand-written Go cases, the way
// map-protocol-map1/conformance_test.go drives conformance_vectors_v11.json.
// Unlike MAP1's MID-string expectations, this compares decoded [Value]
// trees (via FromJSON on the vector's expect_value) with go-cmp.

type conformanceVector struct {
	TestID      string          `json:"test_id"`
	InputHex    string          `json:"input_hex"`
	ExpectValue json.RawMessage `json:"expect_value,omitempty"`
	ExpectError string          `json:"expect_error,omitempty"`
}

type conformanceFile struct {
	Meta    json.RawMessage     `json:"meta"`
	Vectors []conformanceVector `json:"vectors"`
}

func findConformanceVectors(t *testing.T) string {
	t.Helper()
	_, filename, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(filename), "testdata", "conformance", "bser_vectors.json")
	if _, err := os.Stat(path); err != nil {
		t.Skipf("conformance vectors not found at %s: %v", path, err)
	}
	return path
}

func TestConformanceVectors(t *testing.T) {
	path := findConformanceVectors(t)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}

	var file conformanceFile
	if err := json.Unmarshal(raw, &file); err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}

	for _, vec := range file.Vectors {
		t.Run(vec.TestID, func(t *testing.T) {
			input, err := hex.DecodeString(vec.InputHex)
			if err != nil {
				t.Fatalf("bad input_hex: %v", err)
			}

			dec := NewDecoder(Unsorted, WithByteOrder(binary.LittleEndian))
			got, decodeErr := dec.Decode(bytes.NewReader(input))

			if vec.ExpectError != "" {
				assertConformanceError(t, decodeErr, vec.ExpectError)
				return
			}

			if decodeErr != nil {
				t.Fatalf("Decode: %v", decodeErr)
			}

			want, err := FromJSON(vec.ExpectValue)
			if err != nil {
				t.Fatalf("FromJSON(expect_value): %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func assertConformanceError(t *testing.T, err error, kind string) {
	t.Helper()
	switch kind {
	case "framing":
		var fe *FramingError
		if !errors.As(err, &fe) {
			t.Fatalf("err = %v (%T), want *FramingError", err, err)
		}
	case "utf8":
		var cce *CharacterCodingError
		if !errors.As(err, &cce) {
			t.Fatalf("err = %v (%T), want *CharacterCodingError", err, err)
		}
	default:
		t.Fatalf("unknown expect_error kind %q", kind)
	}
}
