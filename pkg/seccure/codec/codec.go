package codec

import (
	"errors"
	"fmt"
	"math/big"
)

// Format selects a wire encoding.
type Format int

const (
	// Binary is fixed-width big-endian bytes.
	Binary Format = iota
	// Compact is fixed-width base-90 printable text.
	Compact
)

// Alphabet lists the Compact digits in value order.
const Alphabet = "!#$%&()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[]^_abcdefghijklmnopqrstuvwxyz{|}~"

const radix = len(Alphabet)

var (
	// ErrDeserialization reports input that is not a valid encoding.
	ErrDeserialization = errors.New("seccure: deserialization failed")

	// ErrBufferTooSmall reports a value that does not fit the requested width.
	ErrBufferTooSmall = errors.New("seccure: value does not fit output length")

	// ErrInvalidFormat reports an unknown Format.
	ErrInvalidFormat = errors.New("seccure: unknown serialization format")
)

var (
	bigRadix = big.NewInt(int64(radix))
	digitOf  [256]int8
)

func init() {
	for i := range digitOf {
		digitOf[i] = -1
	}
	for i := 0; i < radix; i++ {
		digitOf[Alphabet[i]] = int8(i)
	}
}

func (f Format) String() string {
	switch f {
	case Binary:
		return "binary"
	case Compact:
		return "compact"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

func (f Format) valid() bool {
	return f == Binary || f == Compact
}

// Len returns the number of bytes (Binary) or digits (Compact) needed to
// represent x. Zero needs no digits in either format.
func Len(x *big.Int, f Format) int {
	if x == nil || x.Sign() <= 0 {
		return 0
	}
	switch f {
	case Binary:
		return (x.BitLen() + 7) / 8
	case Compact:
		n := 0
		v := new(big.Int).Set(x)
		for v.Sign() > 0 {
			v.Quo(v, bigRadix)
			n++
		}
		return n
	default:
		return 0
	}
}

// Serialize encodes x into exactly outLen bytes or digits.
func Serialize(x *big.Int, outLen int, f Format) ([]byte, error) {
	if !f.valid() {
		return nil, ErrInvalidFormat
	}
	if x == nil || x.Sign() < 0 || outLen < 0 {
		return nil, fmt.Errorf("%w: negative value or length", ErrBufferTooSmall)
	}
	if Len(x, f) > outLen {
		return nil, ErrBufferTooSmall
	}

	out := make([]byte, outLen)
	if f == Binary {
		x.FillBytes(out)
		return out, nil
	}

	v := new(big.Int).Set(x)
	r := new(big.Int)
	for i := outLen - 1; i >= 0; i-- {
		v.QuoRem(v, bigRadix, r)
		out[i] = Alphabet[r.Int64()]
	}
	return out, nil
}

// Deserialize decodes buf. Compact input containing a byte outside Alphabet
// fails with ErrDeserialization.
func Deserialize(buf []byte, f Format) (*big.Int, error) {
	switch f {
	case Binary:
		return new(big.Int).SetBytes(buf), nil
	case Compact:
		v := new(big.Int)
		d := new(big.Int)
		for _, c := range buf {
			digit := digitOf[c]
			if digit < 0 {
				return nil, fmt.Errorf("%w: invalid compact digit", ErrDeserialization)
			}
			v.Mul(v, bigRadix)
			v.Add(v, d.SetInt64(int64(digit)))
		}
		return v, nil
	default:
		return nil, ErrInvalidFormat
	}
}

// DeserializeBounded decodes buf and rejects values >= limit.
func DeserializeBounded(buf []byte, f Format, limit *big.Int) (*big.Int, error) {
	v, err := Deserialize(buf, f)
	if err != nil {
		return nil, err
	}
	if limit != nil && v.Cmp(limit) >= 0 {
		return nil, fmt.Errorf("%w: value out of range", ErrDeserialization)
	}
	return v, nil
}
