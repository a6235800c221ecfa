// Package curve provides the named short-Weierstrass prime curves and the
// point arithmetic the seccure protocols are built on.
//
// Curves satisfy y² = x³ + ax + b over the prime field GF(p) and carry a base
// point G of prime order n with cofactor h. Every curve exposes the fixed
// field widths used on the wire (public key, signature and shared-key
// lengths in both codec formats), derived once when the parameters are built.
//
// # Supported Curves
//
//   - secp112r1, secp128r1, secp160r1 (default "p160")
//   - secp192r1, secp224r1, secp256r1, secp384r1, secp521r1 (also the
//     nistp* aliases)
//   - brainpoolp160r1 through brainpoolp512r1
//   - secp256k1
//
// ByName matches a name as a substring of the table entries in order, so
// "p160" selects secp160r1 and "p256" selects secp256r1.
//
// # Points
//
// Point is an affine point. The point at infinity is the sentinel (0, 0),
// which is never on a registered curve because b is non-zero. Scalar
// multiplication runs a most-significant-bit-first double-and-add ladder in
// Jacobian coordinates and converts back to affine once.
//
//	params, err := curve.ByName("p256")
//	if err != nil {
//	    return err
//	}
//	pub := params.ScalarBaseMult(d)
//	text, err := params.EncodePoint(pub, codec.Compact)
//
// # Validation
//
// EmbeddedValid checks range, non-infinity and the curve equation. FullValid
// additionally checks n·P = O when the cofactor is not one and must be used
// for points received from a peer.
package curve
