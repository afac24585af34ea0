package dsa

import "math/big"

// Signature is a signature pair (r, s). A signature produced by Sign always
// satisfies 0 < r < q and 0 < s < q.
type Signature struct {
	R *big.Int // r = (g^k mod p) mod q
	S *big.Int // s = k^-1 (h + x*r) mod q
}

// ObservedSignature is a signature together with the digest of the message it
// signs, as collected for a nonce audit.
type ObservedSignature struct {
	Z *big.Int // Message digest
	R *big.Int // r component of the signature
	S *big.Int // s component of the signature
}

// AffineRelationship represents the relationship between two nonces.
// k2 = a*k1 + b
type AffineRelationship struct {
	A *big.Int // Affine coefficient
	B *big.Int // Affine offset
}

// RecoveryResult contains the result of a nonce audit that recovered a key.
type RecoveryResult struct {
	PrivateKey    *big.Int           // Recovered private key
	Relationship  AffineRelationship // The affine relationship found (k2 = a*k1 + b)
	SignaturePair [2]int             // Indices of the signature pair used
	Verified      bool               // Whether the key was checked against a public key
	Pattern       string             // Human-readable pattern description
}
