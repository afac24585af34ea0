package dsa

import (
	"math/big"

	errorsmod "cosmossdk.io/errors"
)

// RecoverPrivateKey recovers the private key from two signatures whose nonces
// satisfy k2 = a*k1 + b.
//
// From s_i = k_i^-1 (z_i + x*r_i) mod q it follows that
// x = (a*s2*z1 - s1*z2 + b*s1*s2) / (r2*s1 - a*r1*s2) mod q.
//
// Args:
//   - params: Domain parameters the signatures were produced with
//   - sig1, sig2: Two signatures with affinely related nonces
//   - a: Affine coefficient (k2 = a*k1 + b)
//   - b: Affine offset (k2 = a*k1 + b)
//
// Returns:
//   - Private key if recovery succeeded, ErrRecoveryFailed otherwise
func RecoverPrivateKey(params *Parameters, sig1, sig2 *ObservedSignature, a, b *big.Int) (*big.Int, error) {
	q := params.q

	// Numerator: (a * s2 * z1 - s1 * z2 + b * s1 * s2) mod q
	as2z1 := new(big.Int).Mul(a, sig2.S)
	as2z1.Mul(as2z1, sig1.Z)

	s1z2 := new(big.Int).Mul(sig1.S, sig2.Z)

	bs1s2 := new(big.Int).Mul(b, sig1.S)
	bs1s2.Mul(bs1s2, sig2.S)

	numerator := new(big.Int).Sub(as2z1, s1z2)
	numerator.Add(numerator, bs1s2)
	numerator.Mod(numerator, q)

	// Denominator: (r2 * s1 - a * r1 * s2) mod q
	r2s1 := new(big.Int).Mul(sig2.R, sig1.S)

	ar1s2 := new(big.Int).Mul(a, sig1.R)
	ar1s2.Mul(ar1s2, sig2.S)

	denominator := new(big.Int).Sub(r2s1, ar1s2)
	denominator.Mod(denominator, q)

	if denominator.Sign() == 0 {
		return nil, errorsmod.Wrap(ErrRecoveryFailed, "denominator is zero")
	}

	denominatorInv := new(big.Int).ModInverse(denominator, q)
	if denominatorInv == nil {
		return nil, errorsmod.Wrap(ErrModularInverseUndefined, "denominator is not invertible mod q")
	}

	priv := new(big.Int).Mul(denominatorInv, numerator)
	return priv.Mod(priv, q), nil
}

// VerifyRecoveredKey reports whether g^privateKey mod p equals publicKey.
func VerifyRecoveredKey(params *Parameters, privateKey, publicKey *big.Int) bool {
	if privateKey == nil || publicKey == nil {
		return false
	}
	if privateKey.Sign() <= 0 || privateKey.Cmp(params.q) >= 0 {
		return false
	}
	return new(big.Int).Exp(params.g, privateKey, params.p).Cmp(publicKey) == 0
}

// Observe pairs a signature with the digest of the message it signs.
func Observe(message []byte, sig *Signature) *ObservedSignature {
	return &ObservedSignature{Z: Digest(message), R: sig.R, S: sig.S}
}
