package cmd

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mahdiidarabi/dlsig/internal/bench"
	"github.com/mahdiidarabi/dlsig/internal/metrics"
	"github.com/mahdiidarabi/dlsig/internal/workerpool"
	"github.com/mahdiidarabi/dlsig/pkg/dsa"
)

func newTestCmd(a *app) *cobra.Command {
	var dumpMetrics bool

	cmd := &cobra.Command{
		Use:   "test <message-file>",
		Short: "Benchmark signing and verification of a message",
		Long: `Generates one key pair, signs the message the configured number of times,
then verifies one signature as many times, and reports the elapsed time of
each phase and the share of verifications that succeeded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readMessage(args[0])
			if err != nil {
				return err
			}

			params := dsa.DefaultParameters()
			key, err := dsa.GenerateKeyPair(nil, params)
			if err != nil {
				return err
			}
			a.logger.Debug("generated key pair", "public_key", dsa.Fingerprint(key.PublicKey()))

			pool := workerpool.New(a.cfg.Workers)
			defer pool.Close()

			reg := prometheus.NewRegistry()
			runner := bench.NewRunner(pool).
				WithMetrics(metrics.New(reg)).
				WithLogger(a.logger)

			report, err := runner.Run(cmd.Context(), bench.Job{
				Message:    msg,
				Params:     params,
				Signer:     a.signer(params, key),
				Iterations: a.cfg.Iterations,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			p := message.NewPrinter(language.English)
			p.Fprintf(out, "Time for %d signatures: %d ms\n", report.Iterations, report.SignElapsed.Milliseconds())
			p.Fprintf(out, "Time for %d verifications: %d ms\n", report.Iterations, report.VerifyElapsed.Milliseconds())
			p.Fprintf(out, "Percentage of valid signatures: %.1f%%\n", report.ValidPercentage())

			if dumpMetrics {
				return metrics.WriteText(out, reg)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dumpMetrics, "metrics", false, "Print benchmark metrics in Prometheus text format")
	return cmd
}
