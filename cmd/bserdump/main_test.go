package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"
)

func TestRunDecodeArray(t *testing.T) {
	in := hexBytes(t, "00 01 03 09 00 03 03 03 23 03 42 03 F0")
	var out bytes.Buffer
	code := run([]string{"--byte-order", "little"}, bytes.NewReader(in), &out)
	if code != 0 {
		t.Fatalf("run() = %d, want 0; output: %s", code, out.String())
	}
	got := out.String()
	if !strings.Contains(got, "35") || !strings.Contains(got, "66") {
		t.Errorf("rendered output = %q, want decimal values for 0x23 and 0x42", got)
	}
}

func TestRunDecodeBadMagicExitsNonzero(t *testing.T) {
	in := hexBytes(t, "00 0F 03")
	var out bytes.Buffer
	code := run([]string{"--byte-order", "little"}, bytes.NewReader(in), &out)
	if code == 0 {
		t.Fatalf("run() = 0, want nonzero for bad magic")
	}
}

func TestRunEncodeFromJSONStdin(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"--byte-order", "little", "--encode-json", "-"}, strings.NewReader(`{"a": 1}`), &out)
	if code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}
	if out.Len() < 3 || out.Bytes()[0] != 0x00 || out.Bytes()[1] != 0x01 {
		t.Errorf("output does not start with BSER magic: %x", out.Bytes())
	}
}

func TestRunUnknownByteOrderFlag(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"--byte-order", "middle-endian"}, strings.NewReader(""), &out)
	if code != 2 {
		t.Fatalf("run() = %d, want 2 for bad --byte-order", code)
	}
}

func TestEncodeDecodeThroughCLI(t *testing.T) {
	var encoded bytes.Buffer
	if code := run([]string{"--byte-order", "little", "--encode-json", "-"}, strings.NewReader(`{"x": [1, 2, 3], "y": "z"}`), &encoded); code != 0 {
		t.Fatalf("encode run() = %d", code)
	}

	var decoded bytes.Buffer
	if code := run([]string{"--byte-order", "little"}, bytes.NewReader(encoded.Bytes()), &decoded); code != 0 {
		t.Fatalf("decode run() = %d, output: %s", code, decoded.String())
	}
	got := decoded.String()
	if !strings.Contains(got, `"x"`) || !strings.Contains(got, `"y"`) {
		t.Errorf("decoded output missing expected keys: %q", got)
	}
}

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("hexBytes(%q): %v", s, err)
	}
	return b
}
