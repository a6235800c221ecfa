package curve

import (
	"fmt"
	"math/big"
)

// EmbeddedValid reports whether p has coordinates in [0, p), is not the point
// at infinity and lies on the curve. It does not check subgroup membership.
func (c *Params) EmbeddedValid(p Point) bool {
	if p.IsZero() || p.X == nil || p.Y == nil {
		return false
	}
	if p.X.Sign() < 0 || p.Y.Sign() < 0 || p.X.Cmp(c.P) >= 0 || p.Y.Cmp(c.P) >= 0 {
		return false
	}
	return c.IsOnCurve(p)
}

// FullValid reports whether p is embedded-valid and, on curves with a
// cofactor other than one, lies in the subgroup generated by G.
func (c *Params) FullValid(p Point) bool {
	if !c.EmbeddedValid(p) {
		return false
	}
	if c.Cofactor.Cmp(big.NewInt(1)) == 0 {
		return true
	}
	return c.ScalarMult(p, c.N).IsZero()
}

// Compress returns the x coordinate of p and the parity of its y coordinate.
func (c *Params) Compress(p Point) (x *big.Int, yflag uint) {
	if p.IsZero() {
		return new(big.Int), 0
	}
	return new(big.Int).Set(p.X), p.Y.Bit(0)
}

// Decompress recovers the point with the given x coordinate whose y
// coordinate has parity yflag.
func (c *Params) Decompress(x *big.Int, yflag uint) (Point, error) {
	if x == nil || x.Sign() < 0 || x.Cmp(c.P) >= 0 || yflag > 1 {
		return Point{}, fmt.Errorf("%w: coordinate out of range", ErrInvalidPoint)
	}
	y := new(big.Int).ModSqrt(c.rhs(x), c.P)
	if y == nil {
		return Point{}, fmt.Errorf("%w: x is not on the curve", ErrInvalidPoint)
	}
	if y.Sign() == 0 && yflag == 1 {
		return Point{}, fmt.Errorf("%w: no odd root", ErrInvalidPoint)
	}
	if y.Bit(0) != yflag {
		y.Sub(c.P, y)
	}
	return Point{X: new(big.Int).Set(x), Y: y}, nil
}
