package curve

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/hsiuhsiu/seccure-go/pkg/seccure/codec"
)

// maxDHLenBin caps the shared-key width at the SHA-512 half used for keys.
const maxDHLenBin = 32

// Definition describes a curve by its hex-encoded domain parameters. Name may
// hold several aliases separated by '/'; the first one is canonical.
type Definition struct {
	Name string
	P    string
	A    string
	B    string
	Gx   string
	Gy   string
	N    string
	H    int64
}

// Params holds validated domain parameters and the wire widths derived from
// them. Params values are shared between sessions and must be treated as
// read-only, including the big.Int fields.
type Params struct {
	Name    string
	Aliases []string

	P        *big.Int
	A        *big.Int
	B        *big.Int
	N        *big.Int
	Cofactor *big.Int
	G        Point

	PKLenBin      int
	PKLenCompact  int
	SigLenBin     int
	SigLenCompact int
	DHLenBin      int
	DHLenCompact  int
	ElemLenBin    int
	OrderLenBin   int

	fullName string
}

// New parses and validates def.
func New(def Definition) (*Params, error) {
	aliases := strings.Split(def.Name, "/")
	if def.Name == "" || aliases[0] == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidParams)
	}

	fields := []struct {
		name string
		hex  string
	}{{"p", def.P}, {"a", def.A}, {"b", def.B}, {"gx", def.Gx}, {"gy", def.Gy}, {"n", def.N}}
	vals := make([]*big.Int, len(fields))
	for i, f := range fields {
		v, ok := new(big.Int).SetString(f.hex, 16)
		if !ok || v.Sign() < 0 {
			return nil, fmt.Errorf("%w: %s: malformed %s", ErrInvalidParams, aliases[0], f.name)
		}
		vals[i] = v
	}

	c := &Params{
		Name:     aliases[0],
		Aliases:  aliases,
		P:        vals[0],
		A:        vals[1],
		B:        vals[2],
		G:        Point{X: vals[3], Y: vals[4]},
		N:        vals[5],
		Cofactor: big.NewInt(def.H),
		fullName: def.Name,
	}
	if err := c.check(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidParams, c.Name, err)
	}
	c.deriveLengths()
	return c, nil
}

func (c *Params) check() error {
	if c.P.Cmp(big.NewInt(3)) <= 0 || !c.P.ProbablyPrime(20) {
		return errors.New("modulus is not an odd prime")
	}
	if c.A.Cmp(c.P) >= 0 || c.B.Cmp(c.P) >= 0 {
		return errors.New("coefficient out of range")
	}
	if c.B.Sign() == 0 {
		return errors.New("b must be non-zero")
	}

	// 4a³ + 27b² != 0 (mod p)
	disc := new(big.Int).Exp(c.A, big.NewInt(3), c.P)
	disc.Mul(disc, big.NewInt(4))
	b2 := new(big.Int).Mul(c.B, c.B)
	b2.Mul(b2, big.NewInt(27))
	disc.Add(disc, b2)
	if disc.Mod(disc, c.P).Sign() == 0 {
		return errors.New("singular curve")
	}

	if c.N.Cmp(big.NewInt(1)) <= 0 || !c.N.ProbablyPrime(20) {
		return errors.New("order is not prime")
	}
	if c.Cofactor.Sign() <= 0 {
		return errors.New("cofactor must be positive")
	}
	if !c.EmbeddedValid(c.G) {
		return errors.New("base point is not on the curve")
	}
	if !c.ScalarMult(c.G, c.N).IsZero() {
		return errors.New("base point order mismatch")
	}
	return nil
}

func (c *Params) deriveLengths() {
	one := big.NewInt(1)

	maxPK := new(big.Int).Lsh(c.P, 1)
	maxPK.Sub(maxPK, one)
	c.PKLenBin = codec.Len(maxPK, codec.Binary)
	c.PKLenCompact = codec.Len(maxPK, codec.Compact)

	maxSig := new(big.Int).Mul(c.N, c.N)
	maxSig.Sub(maxSig, one)
	c.SigLenBin = codec.Len(maxSig, codec.Binary)
	c.SigLenCompact = codec.Len(maxSig, codec.Compact)

	c.DHLenBin = min((c.N.BitLen()/2+7)/8, maxDHLenBin)
	maxDH := new(big.Int).Lsh(one, uint(8*c.DHLenBin))
	maxDH.Sub(maxDH, one)
	c.DHLenCompact = codec.Len(maxDH, codec.Compact)

	c.ElemLenBin = codec.Len(c.P, codec.Binary)
	c.OrderLenBin = codec.Len(c.N, codec.Binary)
}

// PKLen returns the encoded public key width in format f.
func (c *Params) PKLen(f codec.Format) int {
	if f == codec.Binary {
		return c.PKLenBin
	}
	return c.PKLenCompact
}

// SigLen returns the encoded signature width in format f.
func (c *Params) SigLen(f codec.Format) int {
	if f == codec.Binary {
		return c.SigLenBin
	}
	return c.SigLenCompact
}

// DHLen returns the shared-key width in format f.
func (c *Params) DHLen(f codec.Format) int {
	if f == codec.Binary {
		return c.DHLenBin
	}
	return c.DHLenCompact
}

// String returns the full table name including aliases.
func (c *Params) String() string {
	return c.fullName
}
