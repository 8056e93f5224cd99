package bser

// magic is the fixed 2-byte prefix of every BSER envelope (§6.2).
var magic = [2]byte{0x00, 0x01}

// Value type tags (§4.3). Each introduces a value at the current
// cursor; arrays, objects, and strings follow their tag with a length
// prefix (§4.3, "Length prefix").
const (
	tagArray  byte = 0x00
	tagObject byte = 0x01
	tagString byte = 0x02
	tagInt8   byte = 0x03
	tagInt16  byte = 0x04
	tagInt32  byte = 0x05
	tagInt64  byte = 0x06
	tagReal   byte = 0x07
	tagTrue   byte = 0x08
	tagFalse  byte = 0x09
	tagNull   byte = 0x0A
)

// Length-type tags (§4.1, §4.3). These double as both the envelope's
// length-type tag and the tag that introduces any length prefix inside
// the body — BSER reuses the integer tags for both purposes.
const (
	lenTypeInt8  = tagInt8
	lenTypeInt16 = tagInt16
	lenTypeInt32 = tagInt32
	lenTypeInt64 = tagInt64
)

// MaxBodyLength is the largest body length the envelope's LENGTH field
// may declare (§4.1, "Range check"). The body is buffered as a single
// contiguous slice addressed by int offsets, so this cap — the maximum
// signed 32-bit integer — is the point past which the implementation
// refuses to even attempt an allocation.
const MaxBodyLength = 2147483647

// DefaultMaxDepth is the recursion-depth ceiling applied when a
// [Decoder] is constructed without [WithMaxDepth]. It resolves the
// recursion-depth Open Question in spec §9: large enough that no
// realistic BSER message is rejected, small enough to bound stack
// growth against adversarial input.
const DefaultMaxDepth = 512
