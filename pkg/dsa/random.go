package dsa

import (
	"crypto/rand"
	"io"
	"math/big"

)

// randomBelow draws bit_length(q) uniform bits from r and reduces them mod q.
// The result may be zero.
func randomBelow(r io.Reader, q *big.Int) (*big.Int, error) {
	if r == nil {
		r = rand.Reader
	}

	bits := q.BitLen()
	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, wrapCause(ErrRandomnessUnavailable, err, "read %d random bytes", len(buf))
	}
	if excess := len(buf)*8 - bits; excess > 0 {
		buf[0] &= byte(0xff >> excess)
	}

	v := new(big.Int).SetBytes(buf)
	return v.Mod(v, q), nil
}
