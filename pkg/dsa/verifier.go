package dsa

import (
	"math/big"

	errorsmod "cosmossdk.io/errors"
)

// Verifier checks signatures against one public key. It holds no mutable
// state and may be shared freely between goroutines.
type Verifier struct {
	params    *Parameters
	publicKey *big.Int
}

// NewVerifier creates a verifier for publicKey over params. A verifier with a
// nil public key rejects every signature.
func NewVerifier(params *Parameters, publicKey *big.Int) *Verifier {
	v := &Verifier{params: params}
	if publicKey != nil {
		v.publicKey = new(big.Int).Set(publicKey)
	}
	return v
}

// Verify reports whether sig is a valid signature of message.
//
// A missing public key, or a signature with r or s outside (0, q), is rejected with false and no
// further arithmetic. An error is returned only when s has no inverse mod q,
// which requires a non-prime q.
func (v *Verifier) Verify(message []byte, sig *Signature) (bool, error) {
	if v.publicKey == nil || sig == nil || !v.params.inRange(sig.R) || !v.params.inRange(sig.S) {
		return false, nil
	}

	p, q, g := v.params.p, v.params.q, v.params.g
	h := Digest(message)

	w := new(big.Int).ModInverse(sig.S, q)
	if w == nil {
		return false, errorsmod.Wrap(ErrModularInverseUndefined, "s is not invertible mod q")
	}

	u1 := new(big.Int).Mul(h, w)
	u1.Mod(u1, q)
	u2 := new(big.Int).Mul(sig.R, w)
	u2.Mod(u2, q)

	gu1 := new(big.Int).Exp(g, u1, p)
	yu2 := new(big.Int).Exp(v.publicKey, u2, p)
	check := gu1.Mul(gu1, yu2)
	check.Mod(check, p)
	check.Mod(check, q)

	return check.Cmp(sig.R) == 0, nil
}

// Verify reports whether sig is a valid signature of message under publicKey.
func Verify(params *Parameters, publicKey *big.Int, message []byte, sig *Signature) (bool, error) {
	return NewVerifier(params, publicKey).Verify(message, sig)
}
