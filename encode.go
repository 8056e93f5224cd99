package bser

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// Encode writes v to w as a complete BSER envelope in canonical form
// (SPEC_FULL.md §D): the narrowest length-type tag that fits the body,
// declared-width integers (an Int8 is written as a 1-byte payload,
// never widened), and — for Objects — whatever key order v's Keys
// slice already has (Encode does not re-sort; callers that decoded
// with [Sorted] and want a sorted wire order get one automatically,
// since the Object they hold is already sorted).
//
// byteOrder controls the order multi-byte integers and reals are
// written in; pass the same order a corresponding [Decoder] will use
// to read the envelope back (§6.1).
func Encode(w io.Writer, v Value, byteOrder binary.ByteOrder) error {
	var body bytes.Buffer
	if err := encodeValue(&body, v, byteOrder); err != nil {
		return err
	}

	bodyLen := body.Len()
	if bodyLen > MaxBodyLength {
		return framingErrorf("BSER length out of range (%d > %d)", bodyLen, MaxBodyLength)
	}

	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	if err := writeLength(w, int64(bodyLen), byteOrder); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

// writeLength writes the envelope's length-type tag and LENGTH field,
// choosing the narrowest width that represents n (§4.1).
func writeLength(w io.Writer, n int64, byteOrder binary.ByteOrder) error {
	var tag byte
	var payload []byte

	switch {
	case n >= math.MinInt8 && n <= math.MaxInt8:
		tag = lenTypeInt8
		payload = []byte{byte(int8(n))}
	case n >= math.MinInt16 && n <= math.MaxInt16:
		tag = lenTypeInt16
		b := make([]byte, 2)
		byteOrder.PutUint16(b, uint16(int16(n)))
		payload = b
	case n >= math.MinInt32 && n <= math.MaxInt32:
		tag = lenTypeInt32
		b := make([]byte, 4)
		byteOrder.PutUint32(b, uint32(int32(n)))
		payload = b
	default:
		tag = lenTypeInt64
		b := make([]byte, 8)
		byteOrder.PutUint64(b, uint64(n))
		payload = b
	}

	if _, err := w.Write([]byte{tag}); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// encodeValue writes v's tag and payload to buf (§4.3's table, in
// reverse).
func encodeValue(buf *bytes.Buffer, v Value, byteOrder binary.ByteOrder) error {
	switch val := v.(type) {
	case nil:
		buf.WriteByte(tagNull)
	case Null:
		buf.WriteByte(tagNull)
	case Bool:
		if val {
			buf.WriteByte(tagTrue)
		} else {
			buf.WriteByte(tagFalse)
		}
	case Int8:
		buf.WriteByte(tagInt8)
		buf.WriteByte(byte(val))
	case Int16:
		buf.WriteByte(tagInt16)
		var b [2]byte
		byteOrder.PutUint16(b[:], uint16(val))
		buf.Write(b[:])
	case Int32:
		buf.WriteByte(tagInt32)
		var b [4]byte
		byteOrder.PutUint32(b[:], uint32(val))
		buf.Write(b[:])
	case Int64:
		buf.WriteByte(tagInt64)
		var b [8]byte
		byteOrder.PutUint64(b[:], uint64(val))
		buf.Write(b[:])
	case Real:
		buf.WriteByte(tagReal)
		var b [8]byte
		byteOrder.PutUint64(b[:], math.Float64bits(float64(val)))
		buf.Write(b[:])
	case String:
		return encodeString(buf, string(val), byteOrder)
	case Array:
		return encodeArray(buf, val, byteOrder)
	case *Object:
		return encodeObject(buf, val, byteOrder)
	default:
		return framingErrorf("bser: Encode: unsupported value type %T", v)
	}
	return nil
}

// encodeString validates UTF-8 before writing — mirroring the
// decoder's own validation, since an encoder that wrote invalid UTF-8
// would produce a stream no conforming decoder could read back
// (SPEC_FULL.md §D).
func encodeString(buf *bytes.Buffer, s string, byteOrder binary.ByteOrder) error {
	raw := []byte(s)
	if !utf8.Valid(raw) {
		return newCharacterCodingError("invalid UTF-8 in BSER string")
	}
	buf.WriteByte(tagString)
	if err := writeLengthPrefix(buf, len(raw), byteOrder); err != nil {
		return err
	}
	buf.Write(raw)
	return nil
}

func encodeArray(buf *bytes.Buffer, arr Array, byteOrder binary.ByteOrder) error {
	buf.WriteByte(tagArray)
	if err := writeLengthPrefix(buf, len(arr), byteOrder); err != nil {
		return err
	}
	for _, item := range arr {
		if err := encodeValue(buf, item, byteOrder); err != nil {
			return err
		}
	}
	return nil
}

func encodeObject(buf *bytes.Buffer, obj *Object, byteOrder binary.ByteOrder) error {
	buf.WriteByte(tagObject)
	n := obj.Len()
	if err := writeLengthPrefix(buf, n, byteOrder); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := encodeString(buf, obj.Keys[i], byteOrder); err != nil {
			return err
		}
		if err := encodeValue(buf, obj.Values[i], byteOrder); err != nil {
			return err
		}
	}
	return nil
}

// writeLengthPrefix writes the length-prefix sub-grammar shared by
// arrays, objects, and strings (§4.3, "Length prefix"): a length-type
// tag followed by the narrowest-fitting payload.
func writeLengthPrefix(buf *bytes.Buffer, n int, byteOrder binary.ByteOrder) error {
	return writeLength(buf, int64(n), byteOrder)
}
