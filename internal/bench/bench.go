// Package bench times batches of sign and verify calls on a worker pool.
package bench

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	"github.com/mahdiidarabi/dlsig/internal/metrics"
	"github.com/mahdiidarabi/dlsig/internal/workerpool"
	"github.com/mahdiidarabi/dlsig/pkg/dsa"
)

// Job describes one benchmark: Iterations signatures of Message, then
// Iterations verifications of a single reference signature.
type Job struct {
	Message    []byte
	Params     *dsa.Parameters
	Signer     *dsa.Signer
	Iterations int
}

// Report summarises a finished run.
type Report struct {
	Iterations    int
	SignElapsed   time.Duration
	VerifyElapsed time.Duration
	Valid         int64
}

// ValidPercentage returns the share of verifications that returned true.
func (r *Report) ValidPercentage() float64 {
	if r.Iterations == 0 {
		return 0
	}
	return float64(r.Valid) / float64(r.Iterations) * 100
}

// Runner executes jobs on a pool it does not own.
type Runner struct {
	pool    *workerpool.Pool
	metrics *metrics.Metrics
	logger  log.Logger
}

// NewRunner creates a runner on pool.
func NewRunner(pool *workerpool.Pool) *Runner {
	return &Runner{
		pool:   pool,
		logger: log.NewNopLogger(),
	}
}

// WithMetrics records every call into m.
func (r *Runner) WithMetrics(m *metrics.Metrics) *Runner {
	r.metrics = m
	return r
}

// WithLogger sets the logger progress is reported to.
func (r *Runner) WithLogger(logger log.Logger) *Runner {
	r.logger = logger
	return r
}

// Run executes job. Any sign or verify error aborts the run and is returned;
// a signature that fails to verify only lowers the valid count.
func (r *Runner) Run(ctx context.Context, job Job) (*Report, error) {
	if job.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", job.Iterations)
	}

	logger := r.logger.With("iterations", job.Iterations, "workers", r.pool.Size())
	report := &Report{Iterations: job.Iterations}

	logger.Info("signing phase started")
	start := time.Now()
	err := r.pool.Run(ctx, job.Iterations, func(_ context.Context, _ int) error {
		t := time.Now()
		_, err := job.Signer.Sign(job.Message)
		r.metrics.ObserveSign(time.Since(t), err)
		return err
	})
	report.SignElapsed = time.Since(start)
	if err != nil {
		return nil, errorsmod.Wrap(err, "signing phase")
	}
	logger.Info("signing phase finished", "elapsed", report.SignElapsed)

	reference, err := job.Signer.Sign(job.Message)
	if err != nil {
		return nil, errorsmod.Wrap(err, "reference signature")
	}
	verifier := dsa.NewVerifier(job.Params, job.Signer.PublicKey())

	logger.Info("verification phase started")
	var valid int64
	start = time.Now()
	err = r.pool.Run(ctx, job.Iterations, func(_ context.Context, _ int) error {
		t := time.Now()
		ok, err := verifier.Verify(job.Message, reference)
		r.metrics.ObserveVerify(time.Since(t), ok, err)
		if err != nil {
			return err
		}
		if ok {
			atomic.AddInt64(&valid, 1)
		}
		return nil
	})
	report.VerifyElapsed = time.Since(start)
	if err != nil {
		return nil, errorsmod.Wrap(err, "verification phase")
	}
	report.Valid = atomic.LoadInt64(&valid)
	logger.Info("verification phase finished", "elapsed", report.VerifyElapsed, "valid", report.Valid)

	return report, nil
}
