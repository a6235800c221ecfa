package curve

import "math/big"

// JacobianPoint represents the affine point (X/Z², Y/Z³). Z = 0 is the point
// at infinity.
type JacobianPoint struct {
	X *big.Int
	Y *big.Int
	Z *big.Int
}

// IsZero reports whether j is the point at infinity.
func (j *JacobianPoint) IsZero() bool {
	return j.Z == nil || j.Z.Sign() == 0
}

// ToJacobian lifts p with Z = 1.
func (c *Params) ToJacobian(p Point) *JacobianPoint {
	if p.IsZero() {
		return &JacobianPoint{X: big.NewInt(1), Y: big.NewInt(1), Z: new(big.Int)}
	}
	return &JacobianPoint{X: new(big.Int).Set(p.X), Y: new(big.Int).Set(p.Y), Z: big.NewInt(1)}
}

// ToAffine converts j back to affine coordinates.
func (c *Params) ToAffine(j *JacobianPoint) Point {
	if j.IsZero() {
		return Infinity()
	}
	zinv := new(big.Int).ModInverse(j.Z, c.P)
	zinv2 := new(big.Int).Mul(zinv, zinv)
	zinv2.Mod(zinv2, c.P)

	x := new(big.Int).Mul(j.X, zinv2)
	x.Mod(x, c.P)

	y := zinv2.Mul(zinv2, zinv)
	y.Mul(y, j.Y)
	y.Mod(y, c.P)
	return Point{X: x, Y: y}
}

// JacobianDouble sets j = 2j for a general coefficient a.
func (c *Params) JacobianDouble(j *JacobianPoint) {
	if j.IsZero() {
		return
	}
	if j.Y.Sign() == 0 {
		j.Z.SetInt64(0)
		return
	}
	p := c.P

	// M = 3X² + aZ⁴
	m := new(big.Int).Mul(j.X, j.X)
	m.Mul(m, big.NewInt(3))
	z4 := new(big.Int).Mul(j.Z, j.Z)
	z4.Mul(z4, z4)
	z4.Mul(z4, c.A)
	m.Add(m, z4)
	m.Mod(m, p)

	// Z' = 2YZ
	j.Z.Mul(j.Z, j.Y)
	j.Z.Lsh(j.Z, 1)
	j.Z.Mod(j.Z, p)

	// S = 4XY²
	y2 := new(big.Int).Mul(j.Y, j.Y)
	y2.Mod(y2, p)
	s := new(big.Int).Mul(j.X, y2)
	s.Lsh(s, 2)
	s.Mod(s, p)

	// X' = M² - 2S
	j.X.Mul(m, m)
	j.X.Sub(j.X, s)
	j.X.Sub(j.X, s)
	j.X.Mod(j.X, p)

	// Y' = M(S - X') - 8Y⁴
	y4 := y2.Mul(y2, y2)
	y4.Lsh(y4, 3)
	j.Y.Sub(s, j.X)
	j.Y.Mul(j.Y, m)
	j.Y.Sub(j.Y, y4)
	j.Y.Mod(j.Y, p)
}

// JacobianAddAffine sets j = j + q.
func (c *Params) JacobianAddAffine(j *JacobianPoint, q Point) {
	if q.IsZero() {
		return
	}
	if j.IsZero() {
		j.X.Set(q.X)
		j.Y.Set(q.Y)
		j.Z.SetInt64(1)
		return
	}
	p := c.P

	// U2 = x2·Z², S2 = y2·Z³
	z2 := new(big.Int).Mul(j.Z, j.Z)
	z2.Mod(z2, p)
	u2 := new(big.Int).Mul(q.X, z2)
	u2.Mod(u2, p)
	s2 := z2.Mul(z2, j.Z)
	s2.Mul(s2, q.Y)
	s2.Mod(s2, p)

	h := u2.Sub(u2, j.X)
	h.Mod(h, p)
	r := s2.Sub(s2, j.Y)
	r.Mod(r, p)

	if h.Sign() == 0 {
		if r.Sign() == 0 {
			c.JacobianDouble(j)
			return
		}
		j.Z.SetInt64(0)
		return
	}

	h2 := new(big.Int).Mul(h, h)
	h2.Mod(h2, p)
	h3 := new(big.Int).Mul(h2, h)
	h3.Mod(h3, p)
	xh2 := h2.Mul(h2, j.X)
	xh2.Mod(xh2, p)

	// X3 = R² - H³ - 2·X1·H²
	x3 := new(big.Int).Mul(r, r)
	x3.Sub(x3, h3)
	x3.Sub(x3, xh2)
	x3.Sub(x3, xh2)
	x3.Mod(x3, p)

	// Y3 = R(X1·H² - X3) - Y1·H³
	y3 := xh2.Sub(xh2, x3)
	y3.Mul(y3, r)
	h3.Mul(h3, j.Y)
	y3.Sub(y3, h3)
	y3.Mod(y3, p)

	// Z3 = Z1·H
	j.Z.Mul(j.Z, h)
	j.Z.Mod(j.Z, p)
	j.X.Set(x3)
	j.Y.Set(y3)
}
