package cli

import (
	"github.com/spf13/cobra"

	"github.com/stackskit/stackskit/internal/output"
	"github.com/stackskit/stackskit/internal/provider"
	"github.com/stackskit/stackskit/internal/service/contract"
)

// contractCmd is the parent command for contract operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "Read and call Clarity contracts",
	Long: `Read and call Clarity contracts.

Reads go straight to the Hiro read-only call API and need no wallet. Calls go
through the wallet bridge, which prompts the user to sign and broadcast.

Arguments are typed: uint:123, int:-5, bool:true, principal:SP...,
ascii:hello, utf8:héllo, buff:deadbeef, none.`,
}

// contractReadCmd performs a read-only function call.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var contractReadCmd = &cobra.Command{
	Use:   "read <contract> <function> [args...]",
	Short: "Call a read-only contract function",
	Example: `  stackskit contract read SP3FBR2AGK5H9QBDH3EEN6DF8EK8JY7RX8QJ5SVTE.arkadiko-token get-total-supply
  stackskit contract read SM3VDXK3WZZSA84XXFKAFAF15NNZX32CTSG82JFQ4.sbtc-token get-balance principal:SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7`,
	Args: cobra.MinimumNArgs(2),
	RunE: runContractRead,
}

// contractCallCmd requests a contract call through the wallet bridge.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var contractCallCmd = &cobra.Command{
	Use:     "call <contract> <function> [args...]",
	Short:   "Request a contract call through the wallet",
	Example: `  stackskit contract call SP000000000000000000002Q6VF78.pox-4 stack-stx uint:100000000`,
	Args:    cobra.MinimumNArgs(2),
	RunE:    runContractCall,
}

// ContractReadResponse is the JSON response for contract read.
type ContractReadResponse struct {
	Contract string `json:"contract"`
	Function string `json:"function"`
	Network  string `json:"network"`
	Result   string `json:"result"`
}

// TxSubmitResponse is the JSON response for commands that yield a txid.
type TxSubmitResponse struct {
	TxID string `json:"tx_id"`
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(contractCmd)
	contractCmd.AddCommand(contractReadCmd)
	contractCmd.AddCommand(contractCallCmd)
}

func runContractRead(cmd *cobra.Command, args []string) error {
	network, err := resolveNetwork()
	if err != nil {
		return err
	}

	values, err := parseClarityArgs(args[2:])
	if err != nil {
		return err
	}

	reader := contract.NewReader(newHiroClient())

	ctx, cancel := contextWithTimeout(cmd, cfg.APITimeout())
	defer cancel()

	result, err := reader.Read(ctx, network, args[0], args[1], values)
	if err != nil {
		return err
	}

	resp := ContractReadResponse{
		Contract: args[0],
		Function: args[1],
		Network:  network.String(),
		Result:   result.String(),
	}
	if formatter.IsJSON() {
		return formatter.Print(resp)
	}
	return formatter.Println(resp.Result)
}

func runContractCall(cmd *cobra.Command, args []string) error {
	values, err := parseClarityArgs(args[2:])
	if err != nil {
		return err
	}

	caller := contract.NewCaller(provider.NewUnavailable())

	ctx, cancel := contextWithTimeout(cmd, cfg.APITimeout())
	defer cancel()

	result, err := caller.Call(ctx, args[0], args[1], values)
	if err != nil {
		return err
	}

	logger.Debug("contract call submitted txid=%s", result.TxID)
	return txSubmitOutput(result.TxID)
}

// txSubmitOutput renders a submitted transaction id.
func txSubmitOutput(txID string) error {
	if formatter.IsJSON() {
		return formatter.Print(TxSubmitResponse{TxID: txID})
	}
	return output.FormatSuccess(formatter.Writer(),
		"Transaction submitted: "+txID, formatter.Format())
}
