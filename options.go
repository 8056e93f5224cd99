package bser

import "encoding/binary"

// Decoder decodes BSER envelopes (§3.4, §6.3). A Decoder is a plain
// value: it holds no state between calls to [Decoder.Decode], so the
// same Decoder can be shared across goroutines decoding independent
// streams (§5).
type Decoder struct {
	ordering  KeyOrdering
	maxDepth  int
	byteOrder binary.ByteOrder
}

// DecoderOption configures a [Decoder] at construction. The shape
// mirrors Neumenon-glyph's stream.ReaderOption: small functional
// options over a value the constructor assembles and returns.
type DecoderOption func(*Decoder)

// NewDecoder constructs a Decoder with the given key-ordering policy
// (§3.2, §6.3) and any additional options. With no options, depth is
// bounded by [DefaultMaxDepth] and integers are read in the host's
// native byte order (§6.1).
func NewDecoder(ordering KeyOrdering, opts ...DecoderOption) *Decoder {
	d := &Decoder{
		ordering:  ordering,
		maxDepth:  DefaultMaxDepth,
		byteOrder: binary.NativeEndian,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithMaxDepth overrides the recursion-depth ceiling applied to nested
// Arrays and Objects (§4.3, §9). Resolves the recursion-depth Open
// Question in spec §9 without converting the recursive descent into an
// explicit work-stack.
func WithMaxDepth(maxDepth int) DecoderOption {
	return func(d *Decoder) {
		d.maxDepth = maxDepth
	}
}

// WithByteOrder overrides the byte order used to decode multi-byte
// integers and reals (§6.1). The default is the host's native order,
// matching the spec's stated convention that the decoder and producer
// share endianness; an explicit order lets a single process decode
// streams from a producer of either endianness.
func WithByteOrder(order binary.ByteOrder) DecoderOption {
	return func(d *Decoder) {
		d.byteOrder = order
	}
}
