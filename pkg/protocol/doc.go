// Package protocol implements the binary wire codec for patch streams.
//
// The codec is the serialization half of whatever transport an application
// chooses; it performs no I/O itself. A PatchFrame carries one diff cycle's
// ordered patch sequence plus a sequence number, encoded with protobuf-style
// varints and length-prefixed strings.
//
// Decoding is defensive: length prefixes are bounded by allocation and
// collection limits, node payloads by depth limits, and unknown op or kind
// bytes fail the decode outright - the stream is versioned by its op
// values. Handler payload projections never cross the wire; only their
// presence is encoded.
package protocol
