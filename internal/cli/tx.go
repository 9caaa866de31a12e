package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stackskit/stackskit/internal/chain"
	"github.com/stackskit/stackskit/internal/output"
	"github.com/stackskit/stackskit/internal/service/txstatus"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// txWatch keeps polling until the transaction reaches a terminal status.
	txWatch bool
)

// txCmd is the parent command for transaction operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Inspect transactions",
	Long:  `Look up transaction status on the Stacks network.`,
}

// txStatusCmd shows the status of a transaction.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var txStatusCmd = &cobra.Command{
	Use:   "status <txid>",
	Short: "Show the status of a transaction",
	Long: `Show the status of a transaction.

With --watch, polls until the transaction confirms, fails, or is dropped.
A transaction the API does not know yet reports not_found; with --watch,
polling continues since it may appear in the mempool shortly.`,
	Example: `  stackskit tx status 0xcafe1234...
  stackskit tx status 0xcafe1234... --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runTxStatus,
}

// TxStatusResponse is the JSON response for tx status.
type TxStatusResponse struct {
	TxID        string `json:"tx_id"`
	Status      string `json:"status"`
	BlockHeight *int64 `json:"block_height,omitempty"`
	Network     string `json:"network"`
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(txCmd)
	txCmd.AddCommand(txStatusCmd)

	txStatusCmd.Flags().BoolVarP(&txWatch, "watch", "w", false, "poll until the transaction reaches a terminal status")
}

func runTxStatus(cmd *cobra.Command, args []string) error {
	network, err := resolveNetwork()
	if err != nil {
		return err
	}
	txID := args[0]

	if txWatch {
		return watchTxStatus(cmd, network, txID)
	}

	ctx, cancel := contextWithTimeout(cmd, cfg.APITimeout())
	defer cancel()

	tx, err := newHiroClient().GetTransaction(ctx, network, txID)
	if err != nil {
		return err
	}

	return txStatusOutput(TxStatusResponse{
		TxID:        tx.TxID,
		Status:      tx.Status.String(),
		BlockHeight: tx.BlockHeight,
		Network:     network.String(),
	})
}

// watchTxStatus polls until the transaction reaches a terminal status or the
// command context is cancelled.
func watchTxStatus(cmd *cobra.Command, network chain.Network, txID string) error {
	poller := txstatus.NewPoller(newHiroClient(), staticNetwork(network), &txstatus.Options{
		Interval: cfg.PollInterval(),
		Logger:   logger,
	})

	ctx := cmd.Context()
	poller.Watch(txID)
	defer poller.Stop()

	if !formatter.IsJSON() {
		output.Infof("Watching %s (poll every %s, Ctrl-C to stop)", txID, cfg.PollInterval())
	}

	if ctx != nil {
		select {
		case <-poller.Done():
		case <-ctx.Done():
			poller.Stop()
		}
	} else {
		<-poller.Done()
	}

	record := poller.Record()
	if record.Err != nil {
		return record.Err
	}

	return txStatusOutput(TxStatusResponse{
		TxID:        record.TxID,
		Status:      record.Status.String(),
		BlockHeight: record.BlockHeight,
		Network:     network.String(),
	})
}

// txStatusOutput renders a transaction status response.
func txStatusOutput(resp TxStatusResponse) error {
	if formatter.IsJSON() {
		return formatter.Print(resp)
	}

	tbl := output.NewTable()
	tbl.SetNoHeader(true)
	tbl.AddRow("Transaction:", resp.TxID)
	tbl.AddRow("Status:", resp.Status)
	if resp.BlockHeight != nil {
		tbl.AddRow("Block height:", strconv.FormatInt(*resp.BlockHeight, 10))
	}
	tbl.AddRow("Network:", resp.Network)
	return formatter.Printf("%s", tbl.String())
}
