package dsa

import "math/big"

// DigestBits is the width of the message digest.
const DigestBits = 160

// Digest maps a message to an integer in [0, 2^160) by reading it as a
// big-endian unsigned integer and reducing it mod 2^160, which amounts to
// keeping its last 20 bytes.
//
// This is a truncation, not a cryptographic hash: two messages that share
// their last 20 bytes have the same digest and therefore accept the same
// signatures. It must not be exposed to adversarial input.
func Digest(message []byte) *big.Int {
	const size = DigestBits / 8
	if len(message) > size {
		message = message[len(message)-size:]
	}
	return new(big.Int).SetBytes(message)
}
