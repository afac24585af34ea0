package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/dlsig/pkg/dsa"
)

func newSignCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sign <message-file> <output-file>",
		Short: "Sign a message with a fresh key pair",
		Long: `Generates a new key pair, signs the message once and writes r, s and the
public key as three decimal lines to the output file.`,
		Args: cobra.ExactArgs(2),
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

			sig, err := a.signer(params, key).Sign(msg)
			if err != nil {
				return err
			}

			err = dsa.WriteSignatureFile(args[1], &dsa.SignatureFile{
				Signature: sig,
				PublicKey: key.PublicKey(),
			})
			if err != nil {
				return err
			}

			a.logger.Info("wrote signature", "file", args[1], "public_key", dsa.Fingerprint(key.PublicKey()))
			fmt.Fprintf(cmd.OutOrStdout(), "Signature written to %s\n", args[1])
			return nil
		},
	}
}
