package cmd

import (
	"fmt"
	"os"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	errorsmod "cosmossdk.io/errors"

	"github.com/mahdiidarabi/dlsig/internal/config"
	"github.com/mahdiidarabi/dlsig/internal/logging"
	"github.com/mahdiidarabi/dlsig/pkg/dsa"
)

// newLogger logs to stderr so command output on stdout stays parseable.
func newLogger(cmd *cobra.Command, cfg config.Config) (log.Logger, error) {
	return logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
}

func readMessage(path string) ([]byte, error) {
	message, err := os.ReadFile(path)
	if err != nil {
		return nil, errorsmod.Wrapf(fmt.Errorf("%w: %w", dsa.ErrIO, err), "read message %s", path)
	}
	return message, nil
}
