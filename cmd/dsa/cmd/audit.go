package cmd

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/dlsig/internal/workerpool"
	"github.com/mahdiidarabi/dlsig/pkg/dsa"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
)

func newAuditCmd(a *app) *cobra.Command {
	var (
		format    string
		publicKey string
		knownA    int64
		knownB    int64
		aRange    []int
		bRange    []int
		maxPairs  int
		noCommon  bool
	)

	cmd := &cobra.Command{
		Use:   "audit <signatures-file>",
		Short: "Search a batch of signatures for related nonces",
		Long: `Loads signatures from a JSON or CSV batch and looks for pairs whose nonces
satisfy k2 = a*k1 + b. Such a pair leaks the signer's private key.

Without --known-a/--known-b the audit checks for repeated r values, then
common generator patterns, then every (a, b) in --a-range x --b-range.
The pattern and range phases need --public-key to confirm candidates.`,
		Example: `  dsa audit signatures.json --public-key 1234...
  dsa audit signatures.csv --format csv --known-a 1 --known-b 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var parser dsa.SignatureParser
			switch format {
			case formatJSON:
				parser = &dsa.JSONParser{}
			case formatCSV:
				parser = &dsa.CSVParser{}
			default:
				return fmt.Errorf("--format must be %s or %s, got %q", formatJSON, formatCSV, format)
			}

			var pub *big.Int
			if publicKey != "" {
				var err error
				if pub, err = parsePublicKey(publicKey); err != nil {
					return err
				}
			}

			client := dsa.NewClient().WithParser(parser)
			out := cmd.OutOrStdout()

			if cmd.Flags().Changed("known-a") || cmd.Flags().Changed("known-b") {
				fmt.Fprintf(out, "Using known relationship: k2 = %d*k1 + %d\n", knownA, knownB)
				result, err := client.WithLogger(a.logger).
					RecoverWithKnownRelationship(cmd.Context(), args[0], knownA, knownB, pub)
				if err != nil {
					return err
				}
				printResult(out, result)
				return nil
			}

			if len(aRange) != 2 || len(bRange) != 2 {
				return fmt.Errorf("--a-range and --b-range take exactly two values: min,max")
			}

			pool := workerpool.New(a.cfg.Workers)
			defer pool.Close()

			strategy := dsa.NewNonceAuditStrategy().
				WithRangeConfig(dsa.RangeConfig{
					ARange:     [2]int{aRange[0], aRange[1]},
					BRange:     [2]int{bRange[0], bRange[1]},
					MaxPairs:   maxPairs,
					NumWorkers: pool.Size(),
					SkipZeroA:  true,
				}).
				WithPatternConfig(dsa.PatternConfig{IncludeCommonPatterns: !noCommon}).
				WithPool(pool)

			fmt.Fprintf(out, "Loading signatures from %s...\n", args[0])
			result, err := client.WithStrategy(strategy).WithLogger(a.logger).
				Audit(cmd.Context(), args[0], pub)
			if err != nil {
				return err
			}
			printResult(out, result)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&format, "format", formatJSON, "Signature batch format (json or csv)")
	f.StringVar(&publicKey, "public-key", "", "Signer public key, decimal or 0x-prefixed hex, used to confirm candidates")
	f.Int64Var(&knownA, "known-a", 1, "Known affine coefficient a (k2 = a*k1 + b)")
	f.Int64Var(&knownB, "known-b", 0, "Known affine offset b (k2 = a*k1 + b)")
	f.IntSliceVar(&aRange, "a-range", []int{-16, 16}, "Range for a in the range search (min,max)")
	f.IntSliceVar(&bRange, "b-range", []int{-256, 256}, "Range for b in the range search (min,max)")
	f.IntVar(&maxPairs, "max-pairs", 100, "Maximum signature pairs to test in the range search")
	f.BoolVar(&noCommon, "no-common", false, "Skip the built-in common patterns")
	return cmd
}

func parsePublicKey(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	pub, ok := new(big.Int).SetString(s, base)
	if !ok || pub.Sign() <= 0 {
		return nil, fmt.Errorf("invalid public key %q", s)
	}
	return pub, nil
}

func printResult(w io.Writer, result *dsa.RecoveryResult) {
	fmt.Fprintf(w, "\n[+] Recovered private key from signatures %d and %d\n", result.SignaturePair[0], result.SignaturePair[1])
	fmt.Fprintf(w, "    Private key: %s\n", result.PrivateKey)
	fmt.Fprintf(w, "    Relationship: k2 = %s*k1 + %s\n", result.Relationship.A, result.Relationship.B)
	fmt.Fprintf(w, "    Pattern: %s\n", result.Pattern)
	if result.Verified {
		fmt.Fprintln(w, "    Verified against public key")
	} else {
		fmt.Fprintln(w, "    Not verified: no public key given")
	}
}
