package bser

import "fmt"

// FramingError reports a decode failure rooted in the binary structure
// of a BSER stream: truncation, bad magic, an unrecognized tag, a
// length out of range, or a non-string object key (§7.1). Its Error
// text is part of the wire-compatibility contract (§4, §9) — callers
// that parse diagnostics should match against it exactly.
type FramingError struct {
	msg string
}

func (e *FramingError) Error() string { return e.msg }

func framingErrorf(format string, args ...any) *FramingError {
	return &FramingError{msg: fmt.Sprintf(format, args...)}
}

// CharacterCodingError reports a decode failure specific to a String
// payload that is not valid UTF-8 (§7.2). It is a distinct type from
// FramingError so callers can use errors.As to tell a protocol failure
// apart from an encoding failure, and log each separately.
type CharacterCodingError struct {
	msg string
}

func (e *CharacterCodingError) Error() string { return e.msg }

func newCharacterCodingError(msg string) *CharacterCodingError {
	return &CharacterCodingError{msg: msg}
}

// errShortHeader reports §4.1's "Magic and framing read" shortfall, and
// is deliberately reused for §4.2's body-truncation case too (§9,
// "Truncation diagnostics" — intentional, for wire compatibility with
// existing producers).
func errShortHeader(expected, got int) *FramingError {
	return framingErrorf("Invalid BSER header (expected %d bytes, got %d bytes)", expected, got)
}

func errBadMagic() *FramingError {
	return framingErrorf("Invalid BSER header")
}

func errUnrecognizedLengthType(tag byte) *FramingError {
	return framingErrorf("Unrecognized BSER header length type %d", tag&0x0F)
}

func errShortHeaderLength(expected, got int) *FramingError {
	return framingErrorf("Invalid BSER header length (expected %d bytes, got %d bytes)", expected, got)
}

func errLengthNegative(value int64) *FramingError {
	return framingErrorf("BSER length out of range (%d < 0)", value)
}

func errLengthTooLarge(value int64) *FramingError {
	return framingErrorf("BSER length out of range (%d > %d)", value, MaxBodyLength)
}

func errUnrecognizedKeyType(tag byte) *FramingError {
	return framingErrorf("Unrecognized BSER object key type %d, expected string", tag)
}

func errMaxDepthExceeded(maxDepth int) *FramingError {
	return framingErrorf("BSER nesting exceeds max depth %d", maxDepth)
}

func errUnknownTag(tag byte) *FramingError {
	return framingErrorf("Unrecognized BSER value type %d", tag)
}

func errTruncated(what string) *FramingError {
	return framingErrorf("Invalid BSER body (truncated %s)", what)
}
