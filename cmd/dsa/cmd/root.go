// Package cmd holds the cobra command tree of the dsa binary.
package cmd

import (
	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mahdiidarabi/dlsig/internal/config"
	"github.com/mahdiidarabi/dlsig/pkg/dsa"
)

const flagConfig = "config"

// app carries what the persistent pre-run resolves to every subcommand.
type app struct {
	v      *viper.Viper
	cfg    config.Config
	logger log.Logger
}

func (a *app) signer(params *dsa.Parameters, key *dsa.KeyPair) *dsa.Signer {
	return dsa.NewSigner(params, key).WithMaxAttempts(a.cfg.MaxSignAttempts)
}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	a := &app{
		v:      config.New(),
		logger: log.NewNopLogger(),
	}

	rootCmd := &cobra.Command{
		Use:   "dsa",
		Short: "Discrete-log signatures over fixed domain parameters",
		Long: `dsa signs and verifies files with a DSA-style scheme over hard-coded
domain parameters, benchmarks the scheme, and audits signature batches for
related nonces.

The message digest is a truncation, not a hash. Do not use it on
adversarial input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path, err := cmd.Flags().GetString(flagConfig)
			if err != nil {
				return err
			}
			if err := config.ReadFile(a.v, path); err != nil {
				return err
			}

			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.logger = logger
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagConfig, "", "Path to a config file (yaml, toml or json)")
	flags.Int("workers", 0, "Number of parallel workers (0 = one per CPU)")
	flags.Int("iterations", config.DefaultIterations, "Signatures and verifications per benchmark phase")
	flags.Int("max-sign-attempts", dsa.DefaultMaxSignAttempts, "Nonce draws before signing gives up")
	flags.String("log-level", "info", "Log level (debug, info, warn, error, disabled)")
	flags.String("log-format", "text", "Log format (text or json)")

	if err := config.BindFlags(a.v, flags); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		newTestCmd(a),
		newSignCmd(a),
		newVerifyCmd(a),
		newParamsCmd(),
		newAuditCmd(a),
	)
	return rootCmd
}
