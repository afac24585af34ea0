package dsa

import (
	"context"
	"fmt"
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
)

// Client provides a high-level API for nonce audits.
type Client struct {
	params   *Parameters
	strategy AuditStrategy
	parser   SignatureParser
	logger   log.Logger
}

// NewClient creates a client over the default parameters with the default
// audit strategy and a JSON parser.
func NewClient() *Client {
	return &Client{
		params:   DefaultParameters(),
		strategy: NewNonceAuditStrategy(),
		parser:   &JSONParser{},
		logger:   log.NewNopLogger(),
	}
}

// WithParameters sets the domain parameters signatures were produced with.
func (c *Client) WithParameters(params *Parameters) *Client {
	c.params = params
	return c
}

// WithStrategy sets a custom audit strategy.
func (c *Client) WithStrategy(strategy AuditStrategy) *Client {
	c.strategy = strategy
	return c
}

// WithParser sets a custom signature parser.
func (c *Client) WithParser(parser SignatureParser) *Client {
	c.parser = parser
	return c
}

// WithLogger sets the logger. The default strategy logs to it as well.
func (c *Client) WithLogger(logger log.Logger) *Client {
	c.logger = logger
	if s, ok := c.strategy.(*NonceAuditStrategy); ok {
		s.WithLogger(logger)
	}
	return c
}

// Audit loads signatures from source and searches them for related nonces.
//
// Args:
//   - ctx: Context for cancellation.
//   - source: Path to the signature batch.
//   - publicKey: Optional signer public key used to confirm candidates.
//
// Returns:
//   - RecoveryResult if a key was recovered, ErrKeyNotRecovered otherwise.
func (c *Client) Audit(ctx context.Context, source string, publicKey *big.Int) (*RecoveryResult, error) {
	signatures, err := c.parser.ParseSignatures(source)
	if err != nil {
		return nil, errorsmod.Wrap(err, "parse signatures")
	}
	return c.AuditSignatures(ctx, signatures, publicKey)
}

// AuditSignatures searches in-memory signatures for related nonces.
func (c *Client) AuditSignatures(ctx context.Context, signatures []*ObservedSignature, publicKey *big.Int) (*RecoveryResult, error) {
	if len(signatures) < 2 {
		return nil, fmt.Errorf("need at least 2 signatures, got %d", len(signatures))
	}

	c.logger.Debug("auditing signatures", "count", len(signatures), "strategy", c.strategy.Name(),
		"public_key", Fingerprint(publicKey))

	result := c.strategy.Search(ctx, c.params, signatures, publicKey)
	if result == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, ErrKeyNotRecovered
	}
	return result, nil
}

// RecoverWithKnownRelationship recovers a private key when the affine
// relationship between nonces is known. Without a public key the first pair
// that yields a candidate is returned unverified.
//
// Args:
//   - ctx: Context for cancellation.
//   - source: Path to the signature batch.
//   - a: Affine coefficient (k2 = a*k1 + b).
//   - b: Affine offset (k2 = a*k1 + b).
//   - publicKey: Optional public key for verification.
func (c *Client) RecoverWithKnownRelationship(ctx context.Context, source string, a, b int64, publicKey *big.Int) (*RecoveryResult, error) {
	signatures, err := c.parser.ParseSignatures(source)
	if err != nil {
		return nil, errorsmod.Wrap(err, "parse signatures")
	}
	if len(signatures) < 2 {
		return nil, fmt.Errorf("need at least 2 signatures, got %d", len(signatures))
	}

	aBig := big.NewInt(a)
	bBig := big.NewInt(b)

	for i := 0; i < len(signatures); i++ {
		for j := i + 1; j < len(signatures); j++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			priv, err := RecoverPrivateKey(c.params, signatures[i], signatures[j], aBig, bBig)
			if err != nil {
				continue
			}

			verified := false
			if publicKey != nil {
				if verified = VerifyRecoveredKey(c.params, priv, publicKey); !verified {
					continue
				}
			}

			return &RecoveryResult{
				PrivateKey:    priv,
				Relationship:  AffineRelationship{A: aBig, B: bBig},
				SignaturePair: [2]int{i, j},
				Verified:      verified,
				Pattern:       fmt.Sprintf("known_a%d_b%d", a, b),
			}, nil
		}
	}

	return nil, errorsmod.Wrapf(ErrKeyNotRecovered, "relationship a=%d, b=%d", a, b)
}
