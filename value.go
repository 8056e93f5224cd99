package bser

// Value is a decoded BSER value. Concrete types:
//
//   - Null
//   - Bool
//   - Int8, Int16, Int32, Int64
//   - Real
//   - String
//   - Array
//   - *Object
//
// Integer variants are preserved at their declared wire width (§3.1):
// an Int8 never promotes to Int32, even though both fit in an int64.
type Value interface {
	bserValue() // sealed marker — only types in this package implement Value
}

// Null is the BSER null value (tag 0x0A).
type Null struct{}

// Bool is a BSER boolean value (tags 0x08/0x09).
type Bool bool

// Int8 is a BSER value decoded from an 8-bit signed integer tag (0x03).
type Int8 int8

// Int16 is a BSER value decoded from a 16-bit signed integer tag (0x04).
type Int16 int16

// Int32 is a BSER value decoded from a 32-bit signed integer tag (0x05).
type Int32 int32

// Int64 is a BSER value decoded from a 64-bit signed integer tag (0x06).
type Int64 int64

// Real is a BSER IEEE-754 binary64 value (tag 0x07).
type Real float64

// String is a BSER UTF-8 text value (tag 0x02). Validated on decode
// (§3.3) and on encode (§D).
type String string

// Array is an ordered sequence of BSER values (tag 0x00). Its length
// equals the declared element count on the wire (§3.3).
type Array []Value

// Object is a BSER key/value mapping (tag 0x01). Keys are stored
// alongside values in a pair of slices, rather than a native Go map,
// so that the iteration order required by the decoder's key-ordering
// policy (§4.4) is explicit and stable — the same representation
// map-protocol-map1's Map type uses for the unrelated reason of keeping
// encode-time ordering explicit.
type Object struct {
	Keys   []string
	Values []Value
}

func (Null) bserValue()    {}
func (Bool) bserValue()    {}
func (Int8) bserValue()    {}
func (Int16) bserValue()   {}
func (Int32) bserValue()   {}
func (Int64) bserValue()   {}
func (Real) bserValue()    {}
func (String) bserValue()  {}
func (Array) bserValue()   {}
func (*Object) bserValue() {}

// Len returns the number of entries in o. A nil *Object has length 0.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Keys)
}

// Get returns the value associated with key and whether it was found.
// When duplicate keys appeared on the wire, the last-write-wins value
// (§3.2) is the one returned.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	for i, k := range o.Keys {
		if k == key {
			return o.Values[i], true
		}
	}
	return nil, false
}

// objectEntry is one (key, value) pair collected while parsing an
// Object, before the key-ordering policy (§4.4) has been applied.
type objectEntry struct {
	key string
	val Value
}
