package bser

import (
	"encoding/binary"
	"io"
)

// readEnvelope consumes the magic prefix, length-type tag, and
// variable-width length field (§4.1), and returns the validated body
// length.
func readEnvelope(r io.Reader, byteOrder binary.ByteOrder) (int, error) {
	header := make([]byte, 3)
	n, err := io.ReadFull(r, header)
	if err != nil {
		if err != io.EOF && err != io.ErrUnexpectedEOF {
			return 0, err
		}
		return 0, errShortHeader(3, n)
	}

	if header[0] != magic[0] || header[1] != magic[1] {
		return 0, errBadMagic()
	}

	lengthTypeTag := header[2]
	width, ok := lengthWidth(lengthTypeTag)
	if !ok {
		return 0, errUnrecognizedLengthType(lengthTypeTag)
	}

	lengthBytes := make([]byte, width)
	n, err = io.ReadFull(r, lengthBytes)
	if err != nil {
		if err != io.ErrUnexpectedEOF && err != io.EOF {
			return 0, err
		}
		return 0, errShortHeaderLength(width, n)
	}

	value := decodeSignedInt(lengthBytes, byteOrder)

	if value < 0 {
		return 0, errLengthNegative(value)
	}
	if value > MaxBodyLength {
		return 0, errLengthTooLarge(value)
	}
	return int(value), nil
}

// readBody reads exactly n bytes into a freshly allocated buffer
// (§4.2). The decoder must not allocate before the envelope has been
// validated (§5) — readBody is only ever called after readEnvelope has
// range-checked n, so this is the first and only body allocation.
func readBody(r io.Reader, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	got, err := io.ReadFull(r, buf)
	if err != nil {
		if err != io.EOF && err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return nil, errShortHeader(n, got)
	}
	return buf, nil
}

// lengthWidth maps a length-type tag to its payload width in bytes
// (§4.1). Returns false for any tag outside 0x03..0x06.
func lengthWidth(tag byte) (int, bool) {
	switch tag {
	case lenTypeInt8:
		return 1, true
	case lenTypeInt16:
		return 2, true
	case lenTypeInt32:
		return 4, true
	case lenTypeInt64:
		return 8, true
	default:
		return 0, false
	}
}

// decodeSignedInt interprets b as a signed integer of b's width (1, 2,
// 4, or 8 bytes) in the given byte order, sign-extending to int64.
func decodeSignedInt(b []byte, byteOrder binary.ByteOrder) int64 {
	switch len(b) {
	case 1:
		return int64(int8(b[0]))
	case 2:
		return int64(int16(byteOrder.Uint16(b)))
	case 4:
		return int64(int32(byteOrder.Uint32(b)))
	case 8:
		return int64(byteOrder.Uint64(b))
	default:
		panic("bser: decodeSignedInt: unsupported width")
	}
}
