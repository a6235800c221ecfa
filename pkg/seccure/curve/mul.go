package curve

import "math/big"

// ScalarMult returns k·p. k must be non-negative; k = 0 and p = O both give
// the point at infinity.
func (c *Params) ScalarMult(p Point, k *big.Int) Point {
	if k == nil || k.Sign() <= 0 || p.IsZero() {
		return Infinity()
	}
	acc := c.ToJacobian(Infinity())
	for i := k.BitLen() - 1; i >= 0; i-- {
		c.JacobianDouble(acc)
		if k.Bit(i) == 1 {
			c.JacobianAddAffine(acc, p)
		}
	}
	return c.ToAffine(acc)
}

// ScalarBaseMult returns k·G.
func (c *Params) ScalarBaseMult(k *big.Int) Point {
	return c.ScalarMult(c.G, k)
}
