package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/dlsig/pkg/dsa"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <message-file> <signature-file>",
		Short: "Verify a signature file against a message",
		Long:  `Reads a three-line signature file written by sign and prints true or false.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readMessage(args[0])
			if err != nil {
				return err
			}

			file, err := dsa.ReadSignatureFile(args[1])
			if err != nil {
				return err
			}

			ok, err := dsa.Verify(dsa.DefaultParameters(), file.PublicKey, msg, file.Signature)
			if err != nil {
				return err
			}

			a.logger.Debug("verified signature", "file", args[1], "public_key", dsa.Fingerprint(file.PublicKey), "valid", ok)
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}
