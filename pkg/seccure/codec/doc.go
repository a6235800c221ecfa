// Package codec converts non-negative integers to and from the two wire
// formats used for keys, signatures and envelopes.
//
// # Formats
//
//   - Binary: fixed-width big-endian bytes, left-padded with zero bytes.
//   - Compact: fixed-width base-90 text, most significant digit first,
//     left-padded with the zero digit '!'.
//
// The Compact alphabet is every printable ASCII character from '!' to '~'
// except the four quoting characters ", ', \ and `, in ascending order. The
// order is part of the wire format: changing it changes every encoded key.
//
// # Lengths
//
// Field widths are fixed per curve. Len reports how many bytes or digits a
// value needs; curve parameters derive their public key, signature and
// shared-key widths from it.
//
//	n := codec.Len(max, codec.Compact)
//	text, err := codec.Serialize(v, n, codec.Compact)
//	back, err := codec.Deserialize(text, codec.Compact)
package codec
