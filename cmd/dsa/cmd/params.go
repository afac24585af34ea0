package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/dlsig/pkg/dsa"
)

func newParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Print the domain parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := dsa.DefaultParameters()
			out := cmd.OutOrStdout()
			for _, v := range []struct {
				name  string
				value fmt.Stringer
				bits  int
			}{
				{"p", params.P(), params.P().BitLen()},
				{"q", params.Q(), params.Q().BitLen()},
				{"g", params.G(), params.G().BitLen()},
			} {
				fmt.Fprintf(out, "%s (%d bits): %s\n", v.name, v.bits, v.value)
			}
			return nil
		},
	}
}
