package cli

import (
	"github.com/spf13/cobra"

	"github.com/stackskit/stackskit/internal/provider"
	"github.com/stackskit/stackskit/internal/service/transfer"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// transferMemo is an optional memo attached to the transfer.
	transferMemo string
)

// transferCmd requests an STX transfer through the wallet bridge.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var transferCmd = &cobra.Command{
	Use:   "transfer <recipient> <amount>",
	Short: "Request an STX transfer through the wallet",
	Long: `Request an STX transfer through the wallet bridge.

The amount is in STX with up to 6 decimal places. The wallet prompts the
user to sign and broadcast; the resulting transaction id is printed.`,
	Example: `  stackskit transfer SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7 1.5
  stackskit transfer SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7 0.25 --memo "coffee"`,
	Args: cobra.ExactArgs(2),
	RunE: runTransfer,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(transferCmd)

	transferCmd.Flags().StringVarP(&transferMemo, "memo", "m", "", "memo to attach (max 34 bytes)")
}

func runTransfer(cmd *cobra.Command, args []string) error {
	svc := transfer.NewService(provider.NewUnavailable())

	ctx, cancel := contextWithTimeout(cmd, cfg.APITimeout())
	defer cancel()

	result, err := svc.Transfer(ctx, transfer.Request{
		Recipient: args[0],
		Amount:    args[1],
		Memo:      transferMemo,
	})
	if err != nil {
		return err
	}

	logger.Debug("transfer submitted txid=%s", result.TxID)
	return txSubmitOutput(result.TxID)
}
