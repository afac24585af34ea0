package dsa

import (
	"context"
	"math/big"
)

// AuditStrategy defines how a nonce audit searches a batch of signatures for
// related nonces. Implement this interface to plug a custom search into a
// Client.
type AuditStrategy interface {
	// Search looks for a pair of signatures with affinely related nonces and
	// returns the recovered key, or nil when none was found. publicKey may be
	// nil, in which case candidates cannot be confirmed.
	Search(ctx context.Context, params *Parameters, signatures []*ObservedSignature, publicKey *big.Int) *RecoveryResult

	// Name returns a human-readable name for this strategy.
	Name() string
}

// Pattern represents a specific affine pattern to test.
type Pattern struct {
	A        *big.Int
	B        *big.Int
	Name     string // Human-readable description
	Priority int    // Lower priority = tested first
}

// RangeConfig configures the exhaustive phase of an audit.
type RangeConfig struct {
	// ARange defines the range for a values [Min, Max] (inclusive)
	ARange [2]int

	// BRange defines the range for b values [Min, Max] (inclusive)
	BRange [2]int

	// MaxPairs limits the number of signature pairs to test
	MaxPairs int

	// NumWorkers sizes the worker pool (0 = one per CPU)
	NumWorkers int

	// SkipZeroA skips a=0, which never relates two independent nonces
	SkipZeroA bool
}

// DefaultRangeConfig returns the range searched when none is configured.
func DefaultRangeConfig() RangeConfig {
	return RangeConfig{
		ARange:     [2]int{-16, 16},
		BRange:     [2]int{-256, 256},
		MaxPairs:   100,
		NumWorkers: 0,
		SkipZeroA:  true,
	}
}

// PatternConfig configures the patterns tried before the range search.
type PatternConfig struct {
	// CustomPatterns are additional patterns to test before the range search
	CustomPatterns []Pattern

	// IncludeCommonPatterns includes built-in common patterns
	IncludeCommonPatterns bool
}

// DefaultPatternConfig returns a configuration with common patterns enabled.
func DefaultPatternConfig() PatternConfig {
	return PatternConfig{
		CustomPatterns:        []Pattern{},
		IncludeCommonPatterns: true,
	}
}

// CommonPatterns returns the nonce relationships produced by the usual
// broken generators: reuse, counters, fixed steps and small multiples.
func CommonPatterns() []Pattern {
	return []Pattern{
		{big.NewInt(1), big.NewInt(0), "same_nonce", 1},
		{big.NewInt(1), big.NewInt(1), "counter_+1", 2},
		{big.NewInt(1), big.NewInt(-1), "counter_-1", 2},
		{big.NewInt(1), big.NewInt(2), "counter_+2", 3},
		{big.NewInt(1), big.NewInt(-2), "counter_-2", 3},
		{big.NewInt(1), big.NewInt(3), "counter_+3", 3},
		{big.NewInt(1), big.NewInt(-3), "counter_-3", 3},
		{big.NewInt(1), big.NewInt(8), "step_8", 4},
		{big.NewInt(1), big.NewInt(16), "step_16", 4},
		{big.NewInt(1), big.NewInt(32), "step_32", 4},
		{big.NewInt(1), big.NewInt(64), "step_64", 4},
		{big.NewInt(1), big.NewInt(256), "step_256", 4},
		{big.NewInt(1), big.NewInt(1024), "step_1024", 4},
		{big.NewInt(1), big.NewInt(10), "step_10", 4},
		{big.NewInt(1), big.NewInt(100), "step_100", 4},
		{big.NewInt(1), big.NewInt(1000), "step_1000", 4},
		{big.NewInt(2), big.NewInt(0), "multiply_2", 5},
		{big.NewInt(2), big.NewInt(1), "multiply_2_+1", 5},
		{big.NewInt(3), big.NewInt(0), "multiply_3", 5},
		{big.NewInt(-1), big.NewInt(0), "negate", 6},
	}
}
