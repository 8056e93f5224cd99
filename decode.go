package bser

import (
	"io"
	"math"
	"unicode/utf8"
)

// Decode reads one BSER envelope from r and returns the decoded Value
// (§6.4). On success, r is left positioned immediately after the
// consumed envelope; on error, its position is unspecified (§6.4, §7).
//
// Decode performs the four phases described in spec §2: it reads and
// validates the envelope (§4.1), reads the declared body into memory
// (§4.2), recursively parses the value tree from the buffer (§4.3), and
// — for any Object encountered — applies the Decoder's key-ordering
// policy (§4.4).
func (d *Decoder) Decode(r io.Reader) (Value, error) {
	bodyLen, err := readEnvelope(r, d.byteOrder)
	if err != nil {
		return nil, err
	}

	body, err := readBody(r, bodyLen)
	if err != nil {
		return nil, err
	}

	p := &parser{buf: body, byteOrder: d.byteOrder, ordering: d.ordering, maxDepth: d.maxDepth}
	val, off, err := p.decodeValue(0, 0)
	if err != nil {
		return nil, err
	}
	if off != len(body) {
		return nil, framingErrorf("Invalid BSER body (trailing bytes after root value)")
	}
	return val, nil
}

// parser holds the in-memory body buffer and cursor state for a single
// top-level Decode call. It is not reused across calls — the Decoder
// itself remains stateless (§3.4).
type parser struct {
	buf       []byte
	byteOrder interface {
		Uint16([]byte) uint16
		Uint32([]byte) uint32
		Uint64([]byte) uint64
	}
	ordering KeyOrdering
	maxDepth int
}

// decodeValue dispatches on the one-byte type tag at off (§4.3).
// depth counts Array/Object nesting; it is checked against maxDepth
// before any recursive call (§4.3, "Recursion depth").
func (p *parser) decodeValue(off, depth int) (Value, int, error) {
	tag, off, err := p.readTag(off)
	if err != nil {
		return nil, off, err
	}

	switch tag {
	case tagNull:
		return Null{}, off, nil
	case tagTrue:
		return Bool(true), off, nil
	case tagFalse:
		return Bool(false), off, nil

	case tagInt8:
		b, newOff, err := p.readBytes(off, 1)
		if err != nil {
			return nil, off, err
		}
		return Int8(int8(b[0])), newOff, nil

	case tagInt16:
		b, newOff, err := p.readBytes(off, 2)
		if err != nil {
			return nil, off, err
		}
		return Int16(int16(p.byteOrder.Uint16(b))), newOff, nil

	case tagInt32:
		b, newOff, err := p.readBytes(off, 4)
		if err != nil {
			return nil, off, err
		}
		return Int32(int32(p.byteOrder.Uint32(b))), newOff, nil

	case tagInt64:
		b, newOff, err := p.readBytes(off, 8)
		if err != nil {
			return nil, off, err
		}
		return Int64(int64(p.byteOrder.Uint64(b))), newOff, nil

	case tagReal:
		b, newOff, err := p.readBytes(off, 8)
		if err != nil {
			return nil, off, err
		}
		bits := p.byteOrder.Uint64(b)
		return Real(math.Float64frombits(bits)), newOff, nil

	case tagString:
		return p.decodeString(off, depth)

	case tagArray:
		return p.decodeArray(off, depth)

	case tagObject:
		return p.decodeObject(off, depth)

	default:
		return nil, off, errUnknownTag(tag)
	}
}

// readTag reads the one-byte type tag at off.
func (p *parser) readTag(off int) (byte, int, error) {
	if off >= len(p.buf) {
		return 0, off, errTruncated("value tag")
	}
	return p.buf[off], off + 1, nil
}

// readBytes returns the next n bytes starting at off, or a truncation
// error if fewer than n bytes remain in the body (§4.3, "Framing
// checks").
func (p *parser) readBytes(off, n int) ([]byte, int, error) {
	if off+n > len(p.buf) {
		return nil, off, errTruncated("fixed-width payload")
	}
	return p.buf[off : off+n], off + n, nil
}

// decodeLengthPrefix reads the length-prefix sub-grammar shared by
// arrays, objects, and strings (§4.3, "Length prefix"): a one-byte
// integer-type tag followed by the appropriate number of payload
// bytes, rejecting negative lengths and lengths exceeding the
// remaining body.
func (p *parser) decodeLengthPrefix(off int) (int, int, error) {
	tag, off, err := p.readTag(off)
	if err != nil {
		return 0, off, err
	}

	width, ok := lengthWidth(tag)
	if !ok {
		return 0, off, errUnknownTag(tag)
	}

	b, off, err := p.readBytes(off, width)
	if err != nil {
		return 0, off, err
	}

	var value int64
	switch width {
	case 1:
		value = int64(int8(b[0]))
	case 2:
		value = int64(int16(p.byteOrder.Uint16(b)))
	case 4:
		value = int64(int32(p.byteOrder.Uint32(b)))
	case 8:
		value = int64(p.byteOrder.Uint64(b))
	}

	if value < 0 {
		return 0, off, errLengthNegative(value)
	}
	if int(value) > len(p.buf)-off {
		return 0, off, errTruncated("length-prefixed payload")
	}
	return int(value), off, nil
}

// decodeString reads a length-prefixed UTF-8 payload (§4.3, "String").
func (p *parser) decodeString(off, _ int) (Value, int, error) {
	n, off, err := p.decodeLengthPrefix(off)
	if err != nil {
		return nil, off, err
	}
	raw, off, err := p.readBytes(off, n)
	if err != nil {
		return nil, off, err
	}
	if !utf8.Valid(raw) {
		return nil, off, newCharacterCodingError("invalid UTF-8 in BSER string")
	}
	return String(raw), off, nil
}

// decodeArray reads a length-prefixed sequence of N values (§4.3,
// "Array").
func (p *parser) decodeArray(off, depth int) (Value, int, error) {
	if err := p.checkDepth(depth); err != nil {
		return nil, off, err
	}
	n, off, err := p.decodeLengthPrefix(off)
	if err != nil {
		return nil, off, err
	}

	arr := make(Array, 0, n)
	for i := 0; i < n; i++ {
		val, newOff, err := p.decodeValue(off, depth+1)
		if err != nil {
			return nil, off, err
		}
		off = newOff
		arr = append(arr, val)
	}
	return arr, off, nil
}

// decodeObject reads N (string, value) pairs and applies the
// Decoder's key-ordering policy to the result (§4.3 "Object", §4.4).
func (p *parser) decodeObject(off, depth int) (Value, int, error) {
	if err := p.checkDepth(depth); err != nil {
		return nil, off, err
	}
	n, off, err := p.decodeLengthPrefix(off)
	if err != nil {
		return nil, off, err
	}

	entries := make([]objectEntry, 0, n)
	for i := 0; i < n; i++ {
		keyTag, keyOff, err := p.readTag(off)
		if err != nil {
			return nil, off, err
		}
		if keyTag != tagString {
			return nil, off, errUnrecognizedKeyType(keyTag)
		}
		keyVal, newOff, err := p.decodeString(keyOff, depth+1)
		if err != nil {
			return nil, off, err
		}
		off = newOff

		val, newOff, err := p.decodeValue(off, depth+1)
		if err != nil {
			return nil, off, err
		}
		off = newOff

		entries = append(entries, objectEntry{key: string(keyVal.(String)), val: val})
	}

	return newObject(entries, p.ordering), off, nil
}

// checkDepth enforces the recursion-depth ceiling before entering a
// nested Array or Object (§4.3, "Recursion depth").
func (p *parser) checkDepth(depth int) error {
	if depth > p.maxDepth {
		return errMaxDepthExceeded(p.maxDepth)
	}
	return nil
}
