package dsa

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
)

// Codespace is the error codespace shared by every error in this package.
const Codespace = "dsa"

var (
	// ErrInvalidParameters is returned when domain parameters fail their algebraic invariants.
	ErrInvalidParameters = errorsmod.Register(Codespace, 1, "invalid domain parameters")

	// ErrRandomnessUnavailable is returned when the entropy source cannot be read.
	ErrRandomnessUnavailable = errorsmod.Register(Codespace, 2, "randomness unavailable")

	// ErrModularInverseUndefined is returned when a nonce or s has no inverse mod q.
	// With a prime q this cannot happen for in-range values.
	ErrModularInverseUndefined = errorsmod.Register(Codespace, 3, "modular inverse undefined")

	// ErrNonceRetriesExhausted is returned when signing draws too many degenerate nonces.
	ErrNonceRetriesExhausted = errorsmod.Register(Codespace, 4, "nonce retries exhausted")

	// ErrMalformedSignatureFile is returned when a signature file is not three decimal lines.
	ErrMalformedSignatureFile = errorsmod.Register(Codespace, 5, "malformed signature file")

	// ErrIO wraps failures reading or writing message and signature files.
	ErrIO = errorsmod.Register(Codespace, 6, "i/o failure")

	// ErrInvalidKey is returned for keys outside their valid range.
	ErrInvalidKey = errorsmod.Register(Codespace, 7, "invalid key")

	// ErrRecoveryFailed is returned when a pair of signatures cannot yield a private key.
	ErrRecoveryFailed = errorsmod.Register(Codespace, 8, "private key recovery failed")

	// ErrInvalidSignatureRecord is returned by the batch parsers for unusable records.
	ErrInvalidSignatureRecord = errorsmod.Register(Codespace, 9, "invalid signature record")

	// ErrKeyNotRecovered is returned by an audit that found no nonce relationship.
	ErrKeyNotRecovered = errorsmod.Register(Codespace, 10, "private key not recovered")
)

// wrapCause returns kind annotated with the message and with cause kept in the
// chain, so errors.Is matches both.
func wrapCause(kind, cause error, format string, args ...any) error {
	return errorsmod.Wrapf(fmt.Errorf("%w: %w", kind, cause), format, args...)
}
