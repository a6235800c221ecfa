package curve

import "math/big"

// Point is an affine curve point. The zero value and (0, 0) both denote the
// point at infinity.
type Point struct {
	X *big.Int
	Y *big.Int
}

// Infinity returns the point at infinity.
func Infinity() Point {
	return Point{X: new(big.Int), Y: new(big.Int)}
}

// IsZero reports whether p is the point at infinity.
func (p Point) IsZero() bool {
	return (p.X == nil || p.X.Sign() == 0) && (p.Y == nil || p.Y.Sign() == 0)
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	if p.IsZero() || q.IsZero() {
		return p.IsZero() && q.IsZero()
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// Clone returns a deep copy of p.
func (p Point) Clone() Point {
	if p.IsZero() {
		return Infinity()
	}
	return Point{X: new(big.Int).Set(p.X), Y: new(big.Int).Set(p.Y)}
}

// rhs returns x³ + ax + b mod p.
func (c *Params) rhs(x *big.Int) *big.Int {
	r := new(big.Int).Mul(x, x)
	r.Add(r, c.A)
	r.Mul(r, x)
	r.Add(r, c.B)
	return r.Mod(r, c.P)
}

// IsOnCurve reports whether p satisfies the curve equation. Infinity is not
// on the curve.
func (c *Params) IsOnCurve(p Point) bool {
	if p.IsZero() || p.X == nil || p.Y == nil {
		return false
	}
	y2 := new(big.Int).Mul(p.Y, p.Y)
	y2.Mod(y2, c.P)
	return y2.Cmp(c.rhs(p.X)) == 0
}

// Neg returns -p.
func (c *Params) Neg(p Point) Point {
	if p.IsZero() {
		return Infinity()
	}
	y := new(big.Int).Sub(c.P, p.Y)
	return Point{X: new(big.Int).Set(p.X), Y: y.Mod(y, c.P)}
}

// Double returns 2p in affine coordinates.
func (c *Params) Double(p Point) Point {
	if p.IsZero() || p.Y.Sign() == 0 {
		return Infinity()
	}

	// λ = (3x² + a) / 2y
	num := new(big.Int).Mul(p.X, p.X)
	num.Mul(num, big.NewInt(3))
	num.Add(num, c.A)
	den := new(big.Int).Lsh(p.Y, 1)
	den.ModInverse(den.Mod(den, c.P), c.P)
	lambda := num.Mul(num, den)
	lambda.Mod(lambda, c.P)

	return c.finishAdd(lambda, p.X, p.X, p.Y)
}

// Add returns p + q in affine coordinates.
func (c *Params) Add(p, q Point) Point {
	switch {
	case p.IsZero():
		return q.Clone()
	case q.IsZero():
		return p.Clone()
	case p.X.Cmp(q.X) == 0:
		if p.Y.Cmp(q.Y) == 0 {
			return c.Double(p)
		}
		return Infinity()
	}

	// λ = (y2 - y1) / (x2 - x1)
	num := new(big.Int).Sub(q.Y, p.Y)
	den := new(big.Int).Sub(q.X, p.X)
	den.ModInverse(den.Mod(den, c.P), c.P)
	lambda := num.Mul(num, den)
	lambda.Mod(lambda, c.P)

	return c.finishAdd(lambda, p.X, q.X, p.Y)
}

// finishAdd computes x3 = λ² - x1 - x2 and y3 = λ(x1 - x3) - y1.
func (c *Params) finishAdd(lambda, x1, x2, y1 *big.Int) Point {
	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, x1)
	x3.Sub(x3, x2)
	x3.Mod(x3, c.P)

	y3 := new(big.Int).Sub(x1, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, y1)
	y3.Mod(y3, c.P)

	return Point{X: x3, Y: y3}
}
