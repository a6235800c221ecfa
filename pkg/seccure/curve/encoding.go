package curve

import (
	"fmt"
	"math/big"

	"github.com/hsiuhsiu/seccure-go/pkg/seccure/codec"
)

// EncodePoint serializes p as the integer x + yflag·p at the curve's public
// key width in format f.
func (c *Params) EncodePoint(p Point, f codec.Format) ([]byte, error) {
	if p.IsZero() {
		return nil, fmt.Errorf("%w: cannot encode infinity", ErrInvalidPoint)
	}
	x, yflag := c.Compress(p)
	if yflag == 1 {
		x.Add(x, c.P)
	}
	return codec.Serialize(x, c.PKLen(f), f)
}

// DecodePoint parses an encoding produced by EncodePoint. The input must be
// exactly the public key width for f.
func (c *Params) DecodePoint(buf []byte, f codec.Format) (Point, error) {
	if len(buf) != c.PKLen(f) {
		return Point{}, fmt.Errorf("%w: point encoding is %d bytes, want %d", codec.ErrDeserialization, len(buf), c.PKLen(f))
	}
	limit := new(big.Int).Lsh(c.P, 1)
	v, err := codec.DeserializeBounded(buf, f, limit)
	if err != nil {
		return Point{}, err
	}
	yflag := uint(0)
	if v.Cmp(c.P) >= 0 {
		v.Sub(v, c.P)
		yflag = 1
	}
	return c.Decompress(v, yflag)
}
