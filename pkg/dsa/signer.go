package dsa

import (
	"io"
	"math/big"

	errorsmod "cosmossdk.io/errors"
)

// DefaultMaxSignAttempts bounds the nonce retry loop. With the default
// parameters a single attempt fails with probability about 2^-159.
const DefaultMaxSignAttempts = 64

// Signer produces signatures under one private key.
//
// A Signer is safe for concurrent use as long as its random source is;
// crypto/rand.Reader, the default, is.
type Signer struct {
	params      *Parameters
	key         *KeyPair
	rand        io.Reader
	maxAttempts int
}

// NewSigner creates a signer for key over params.
func NewSigner(params *Parameters, key *KeyPair) *Signer {
	return &Signer{
		params:      params,
		key:         key,
		maxAttempts: DefaultMaxSignAttempts,
	}
}

// WithRand sets the entropy source nonces are drawn from.
func (s *Signer) WithRand(rand io.Reader) *Signer {
	s.rand = rand
	return s
}

// WithMaxAttempts sets how many nonces are drawn before giving up.
func (s *Signer) WithMaxAttempts(n int) *Signer {
	if n > 0 {
		s.maxAttempts = n
	}
	return s
}

// PublicKey returns the public key signatures verify against.
func (s *Signer) PublicKey() *big.Int {
	return s.key.PublicKey()
}

// Sign signs message with a fresh nonce.
//
// For each attempt a nonce k is drawn from bit_length(q) random bits mod q,
// r = (g^k mod p) mod q and s = k^-1 (h + x*r) mod q are computed, and the
// attempt is discarded when k, r or s is zero. Two calls never share a nonce
// unless the random source repeats itself.
func (s *Signer) Sign(message []byte) (*Signature, error) {
	p, q, g := s.params.p, s.params.q, s.params.g
	h := Digest(message)

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		k, err := randomBelow(s.rand, q)
		if err != nil {
			return nil, errorsmod.Wrap(err, "draw nonce")
		}
		if k.Sign() == 0 {
			continue
		}

		r := new(big.Int).Exp(g, k, p)
		r.Mod(r, q)
		if r.Sign() == 0 {
			continue
		}

		kInv := new(big.Int).ModInverse(k, q)
		if kInv == nil {
			return nil, errorsmod.Wrap(ErrModularInverseUndefined, "nonce is not invertible mod q")
		}

		sig := new(big.Int).Mul(s.key.private, r)
		sig.Add(sig, h)
		sig.Mul(sig, kInv)
		sig.Mod(sig, q)
		if sig.Sign() == 0 {
			continue
		}

		return &Signature{R: r, S: sig}, nil
	}

	return nil, errorsmod.Wrapf(ErrNonceRetriesExhausted, "after %d attempts", s.maxAttempts)
}

// Sign signs message under key with nonces drawn from rand (crypto/rand.Reader
// when nil).
func Sign(rand io.Reader, params *Parameters, key *KeyPair, message []byte) (*Signature, error) {
	return NewSigner(params, key).WithRand(rand).Sign(message)
}
