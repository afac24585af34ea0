package main

import (
	"fmt"
	"os"

	"github.com/mahdiidarabi/dlsig/cmd/dsa/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
}
