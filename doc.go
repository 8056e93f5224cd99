// Package bser implements BSER, the binary serialization format used by
// the Watchman file-watching daemon for framed request/response
// messages.
//
// A [Decoder] reads one length-prefixed envelope at a time from an
// [io.Reader] and materializes the embedded value tree into a [Value].
// [Encode] performs the inverse operation, writing a [Value] back out
// in BSER's canonical form.
//
// The decoding phases are outlined on [Decoder.Decode]; callers
// that only need to round-trip Go data through BSER can ignore the
// width distinctions and work with [FromJSON] and [Encode] directly.
package bser
