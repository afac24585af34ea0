package dsa

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"

	"cosmossdk.io/log"

	"github.com/mahdiidarabi/dlsig/internal/workerpool"
)

// NonceAuditStrategy is a multi-phase audit that looks for nonce reuse first,
// then tries known patterns, then sweeps a range of (a, b) on a worker pool.
type NonceAuditStrategy struct {
	RangeConfig   RangeConfig
	PatternConfig PatternConfig

	logger log.Logger
	pool   *workerpool.Pool
}

// NewNonceAuditStrategy creates an audit strategy with default settings.
func NewNonceAuditStrategy() *NonceAuditStrategy {
	return &NonceAuditStrategy{
		RangeConfig:   DefaultRangeConfig(),
		PatternConfig: DefaultPatternConfig(),
		logger:        log.NewNopLogger(),
	}
}

// WithRangeConfig sets the range configuration for the strategy.
func (s *NonceAuditStrategy) WithRangeConfig(config RangeConfig) *NonceAuditStrategy {
	s.RangeConfig = config
	return s
}

// WithPatternConfig sets the pattern configuration for the strategy.
func (s *NonceAuditStrategy) WithPatternConfig(config PatternConfig) *NonceAuditStrategy {
	s.PatternConfig = config
	return s
}

// WithLogger sets the logger progress is reported to.
func (s *NonceAuditStrategy) WithLogger(logger log.Logger) *NonceAuditStrategy {
	s.logger = logger
	return s
}

// WithPool runs the range search on a caller-owned pool instead of a
// temporary one.
func (s *NonceAuditStrategy) WithPool(pool *workerpool.Pool) *NonceAuditStrategy {
	s.pool = pool
	return s
}

// Name returns the name of this strategy.
func (s *NonceAuditStrategy) Name() string {
	return "NonceAudit"
}

// Search implements the AuditStrategy interface.
func (s *NonceAuditStrategy) Search(ctx context.Context, params *Parameters, signatures []*ObservedSignature, publicKey *big.Int) *RecoveryResult {
	if len(signatures) < 2 {
		return nil
	}

	logger := s.logger.With("strategy", s.Name(), "signatures", len(signatures))
	logger.Info("starting nonce audit")

	logger.Debug("phase 0: checking for repeated r")
	if result := s.checkSameNonceReuse(params, signatures, publicKey); result != nil {
		logger.Info("found nonce reuse", "pair", result.SignaturePair)
		return result
	}

	if publicKey == nil {
		logger.Warn("no public key given, skipping pattern and range phases")
		return nil
	}

	if s.PatternConfig.IncludeCommonPatterns {
		logger.Debug("phase 1: trying common patterns")
		if result := s.tryPatterns(ctx, params, signatures, publicKey, CommonPatterns()); result != nil {
			logger.Info("found common pattern", "pattern", result.Pattern)
			return result
		}
	}

	if len(s.PatternConfig.CustomPatterns) > 0 {
		logger.Debug("phase 2: trying custom patterns", "count", len(s.PatternConfig.CustomPatterns))
		if result := s.tryPatterns(ctx, params, signatures, publicKey, s.PatternConfig.CustomPatterns); result != nil {
			logger.Info("found custom pattern", "pattern", result.Pattern)
			return result
		}
	}

	logger.Debug("phase 3: range search",
		"a_range", s.RangeConfig.ARange, "b_range", s.RangeConfig.BRange)
	result, err := s.rangeSearch(ctx, params, signatures, publicKey)
	if err != nil {
		logger.Error("range search aborted", "err", err)
		return nil
	}
	if result == nil {
		logger.Info("no nonce relationship found")
	}
	return result
}

// checkSameNonceReuse checks for identical r values, which in practice means
// an identical nonce.
func (s *NonceAuditStrategy) checkSameNonceReuse(params *Parameters, signatures []*ObservedSignature, publicKey *big.Int) *RecoveryResult {
	a := big.NewInt(1)
	b := big.NewInt(0)

	for i := 0; i < len(signatures); i++ {
		for j := i + 1; j < len(signatures); j++ {
			if signatures[i].R.Cmp(signatures[j].R) != 0 {
				continue
			}

			priv, err := RecoverPrivateKey(params, signatures[i], signatures[j], a, b)
			if err != nil || priv.Sign() == 0 {
				continue
			}

			verified := false
			if publicKey != nil {
				if verified = VerifyRecoveredKey(params, priv, publicKey); !verified {
					continue
				}
			}

			return &RecoveryResult{
				PrivateKey:    priv,
				Relationship:  AffineRelationship{A: a, B: b},
				SignaturePair: [2]int{i, j},
				Verified:      verified,
				Pattern:       "same_nonce_reuse",
			}
		}
	}
	return nil
}

// tryPatterns tries each pattern across all signature pairs.
func (s *NonceAuditStrategy) tryPatterns(ctx context.Context, params *Parameters, signatures []*ObservedSignature, publicKey *big.Int, patterns []Pattern) *RecoveryResult {
	for _, pattern := range patterns {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if result := tryPattern(params, signatures, publicKey, pattern.A, pattern.B, pattern.Name); result != nil {
			return result
		}
	}
	return nil
}

// tryPattern tries a specific (a, b) pattern across all signature pairs.
func tryPattern(params *Parameters, signatures []*ObservedSignature, publicKey, a, b *big.Int, patternName string) *RecoveryResult {
	for i := 0; i < len(signatures); i++ {
		for j := i + 1; j < len(signatures); j++ {
			if result := tryPair(params, signatures, publicKey, i, j, a, b, patternName); result != nil {
				return result
			}
		}
	}
	return nil
}

// tryPair recovers a candidate key from one pair and keeps it only if it
// matches publicKey.
func tryPair(params *Parameters, signatures []*ObservedSignature, publicKey *big.Int, i, j int, a, b *big.Int, patternName string) *RecoveryResult {
	priv, err := RecoverPrivateKey(params, signatures[i], signatures[j], a, b)
	if err != nil {
		return nil
	}
	if !VerifyRecoveredKey(params, priv, publicKey) {
		return nil
	}
	return &RecoveryResult{
		PrivateKey:    priv,
		Relationship:  AffineRelationship{A: a, B: b},
		SignaturePair: [2]int{i, j},
		Verified:      true,
		Pattern:       patternName,
	}
}

// rangeSearch sweeps every (a, b) in the configured range over the first
// MaxPairs signature pairs. Each pool task handles one (pair, a) row.
func (s *NonceAuditStrategy) rangeSearch(ctx context.Context, params *Parameters, signatures []*ObservedSignature, publicKey *big.Int) (*RecoveryResult, error) {
	cfg := s.RangeConfig

	var pairs [][2]int
	for i := 0; i < len(signatures) && (cfg.MaxPairs <= 0 || len(pairs) < cfg.MaxPairs); i++ {
		for j := i + 1; j < len(signatures) && (cfg.MaxPairs <= 0 || len(pairs) < cfg.MaxPairs); j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}

	var aValues []int64
	for a := cfg.ARange[0]; a <= cfg.ARange[1]; a++ {
		if cfg.SkipZeroA && a == 0 {
			continue
		}
		aValues = append(aValues, int64(a))
	}
	if len(pairs) == 0 || len(aValues) == 0 || cfg.BRange[0] > cfg.BRange[1] {
		return nil, nil
	}

	pool := s.pool
	if pool == nil {
		pool = workerpool.New(cfg.NumWorkers)
		defer pool.Close()
	}

	var (
		tested int64
		once   sync.Once
		found  *RecoveryResult
	)

	err := pool.Run(ctx, len(pairs)*len(aValues), func(ctx context.Context, n int) error {
		pair := pairs[n/len(aValues)]
		a := big.NewInt(aValues[n%len(aValues)])

		for b := cfg.BRange[0]; b <= cfg.BRange[1]; b++ {
			if ctx.Err() != nil {
				return nil
			}
			atomic.AddInt64(&tested, 1)

			bBig := big.NewInt(int64(b))
			name := fmt.Sprintf("range_a%s_b%d", a, b)
			if result := tryPair(params, signatures, publicKey, pair[0], pair[1], a, bBig, name); result != nil {
				once.Do(func() { found = result })
				return workerpool.ErrStop
			}
		}
		return nil
	})

	s.logger.Debug("range search finished", "combinations", atomic.LoadInt64(&tested), "workers", pool.Size())
	if err != nil {
		return nil, err
	}
	return found, nil
}
