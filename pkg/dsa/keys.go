package dsa

import (
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"golang.org/x/crypto/sha3"
)

// KeyPair is a private/public key pair over a set of domain parameters.
//
// The private key is never exported, printed or serialized by this package;
// formatting a KeyPair with %v, %+v or %#v shows only the public key
// fingerprint.
type KeyPair struct {
	private *big.Int
	public  *big.Int
}

// GenerateKeyPair draws a private key x uniformly from bit_length(q) random
// bits reduced mod q and computes y = g^x mod p.
//
// A nil rand uses crypto/rand.Reader. The only failure is an unreadable
// entropy source, reported as ErrRandomnessUnavailable.
func GenerateKeyPair(rand io.Reader, params *Parameters) (*KeyPair, error) {
	x, err := randomBelow(rand, params.q)
	if err != nil {
		return nil, errorsmod.Wrap(err, "generate private key")
	}
	return &KeyPair{
		private: x,
		public:  new(big.Int).Exp(params.g, x, params.p),
	}, nil
}

// NewKeyPair rebuilds the key pair of a known private key.
func NewKeyPair(params *Parameters, privateKey *big.Int) (*KeyPair, error) {
	if privateKey == nil || privateKey.Sign() < 0 || privateKey.Cmp(params.q) >= 0 {
		return nil, errorsmod.Wrap(ErrInvalidKey, "private key must be in [0, q)")
	}
	x := new(big.Int).Set(privateKey)
	return &KeyPair{
		private: x,
		public:  new(big.Int).Exp(params.g, x, params.p),
	}, nil
}

// PublicKey returns a copy of y.
func (kp *KeyPair) PublicKey() *big.Int {
	return new(big.Int).Set(kp.public)
}

// String implements fmt.Stringer without revealing the private key.
func (kp KeyPair) String() string {
	return fmt.Sprintf("KeyPair{public: %s}", Fingerprint(kp.public))
}

// GoString implements fmt.GoStringer without revealing the private key.
func (kp KeyPair) GoString() string {
	return kp.String()
}

// Fingerprint returns a short tag identifying a public key in logs: the first
// eight bytes of SHA3-256 over its big-endian encoding, hex encoded.
func Fingerprint(publicKey *big.Int) string {
	if publicKey == nil {
		return "<nil>"
	}
	sum := sha3.Sum256(publicKey.Bytes())
	return hex.EncodeToString(sum[:8])
}
