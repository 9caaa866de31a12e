package cli

import (
	"github.com/spf13/cobra"

	"github.com/stackskit/stackskit/internal/output"
	"github.com/stackskit/stackskit/internal/service/balance"
	"github.com/stackskit/stackskit/internal/service/contract"
)

// balanceCmd is the parent command for balance operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Check token balances",
	Long: `Check STX and sBTC balances for a Stacks address.

STX balances come from the Hiro account API. sBTC balances come from a
read-only get-balance call against the network's sBTC token contract.`,
}

// balanceSTXCmd shows the STX balance for an address.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var balanceSTXCmd = &cobra.Command{
	Use:   "stx <address>",
	Short: "Show the STX balance for an address",
	Example: `  stackskit balance stx SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7
  stackskit balance stx ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM --network testnet`,
	Args: cobra.ExactArgs(1),
	RunE: runBalanceSTX,
}

// balanceSBTCCmd shows the sBTC balance for an address.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var balanceSBTCCmd = &cobra.Command{
	Use:     "sbtc <address>",
	Short:   "Show the sBTC balance for an address",
	Example: `  stackskit balance sbtc SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7`,
	Args:    cobra.ExactArgs(1),
	RunE:    runBalanceSBTC,
}

// BalanceResponse is the JSON response for balance commands.
type BalanceResponse struct {
	Address   string `json:"address"`
	Asset     string `json:"asset"`
	Network   string `json:"network"`
	Raw       string `json:"raw"`
	Formatted string `json:"formatted"`
	Decimals  int    `json:"decimals"`
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.AddCommand(balanceSTXCmd)
	balanceCmd.AddCommand(balanceSBTCCmd)
}

func runBalanceSTX(cmd *cobra.Command, args []string) error {
	network, err := resolveNetwork()
	if err != nil {
		return err
	}

	fetcher := balance.NewFetcher(newHiroClient(), staticNetwork(network))

	ctx, cancel := contextWithTimeout(cmd, cfg.APITimeout())
	defer cancel()

	record, err := fetcher.Fetch(ctx, args[0])
	if err != nil {
		return err
	}

	logger.Debug("stx balance fetched address=%s raw=%s", record.Address, record.Raw)
	return balanceOutput(balanceResponse(record, "STX", network.String()))
}

func runBalanceSBTC(cmd *cobra.Command, args []string) error {
	network, err := resolveNetwork()
	if err != nil {
		return err
	}

	reader := contract.NewReader(newHiroClient())
	fetcher := balance.NewSBTCFetcher(reader, staticNetwork(network))

	ctx, cancel := contextWithTimeout(cmd, cfg.APITimeout())
	defer cancel()

	record, err := fetcher.Fetch(ctx, args[0])
	if err != nil {
		return err
	}

	logger.Debug("sbtc balance fetched address=%s raw=%s", record.Address, record.Raw)
	return balanceOutput(balanceResponse(record, "sBTC", network.String()))
}

// balanceResponse maps a balance record to the response shape.
func balanceResponse(record balance.Record, asset, network string) BalanceResponse {
	raw := "0"
	if record.Raw != nil {
		raw = record.Raw.String()
	}
	return BalanceResponse{
		Address:   record.Address,
		Asset:     asset,
		Network:   network,
		Raw:       raw,
		Formatted: record.Formatted,
		Decimals:  record.Decimals,
	}
}

// balanceOutput renders a balance response.
func balanceOutput(resp BalanceResponse) error {
	if formatter.IsJSON() {
		return formatter.Print(resp)
	}

	tbl := output.NewTable("ASSET", "BALANCE", "NETWORK")
	tbl.AlignRight(1)
	tbl.AddRow(resp.Asset, resp.Formatted, resp.Network)
	return formatter.Printf("%s", tbl.String())
}
