package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackskit/stackskit/internal/chain"
	"github.com/stackskit/stackskit/internal/output"
)

// networkCmd is the parent command for network preference operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Show or set the active network",
	Long: `Show or set the active Stacks network.

The selected network is persisted and survives disconnects. All balance,
transaction, and contract commands use it unless --network overrides it.`,
}

// networkShowCmd prints the active network.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var networkShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Show the active network",
	Example: `  stackskit network show`,
	RunE:    runNetworkShow,
}

// networkSetCmd persists a network preference.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var networkSetCmd = &cobra.Command{
	Use:     "set <mainnet|testnet>",
	Short:   "Set and persist the active network",
	Example: `  stackskit network set testnet`,
	Args:    cobra.ExactArgs(1),
	RunE:    runNetworkSet,
}

// NetworkResponse is the JSON response for network commands.
type NetworkResponse struct {
	Network string `json:"network"`
	APIURL  string `json:"api_url"`
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(networkCmd)
	networkCmd.AddCommand(networkShowCmd)
	networkCmd.AddCommand(networkSetCmd)
}

func runNetworkShow(_ *cobra.Command, _ []string) error {
	network, err := resolveNetwork()
	if err != nil {
		return err
	}

	resp := NetworkResponse{
		Network: network.String(),
		APIURL:  network.APIURL(),
	}
	if formatter.IsJSON() {
		return formatter.Print(resp)
	}

	tbl := output.NewTable()
	tbl.SetNoHeader(true)
	tbl.AddRow("Network:", resp.Network)
	tbl.AddRow("API URL:", resp.APIURL)
	return formatter.Printf("%s", tbl.String())
}

func runNetworkSet(_ *cobra.Command, args []string) error {
	network, err := chain.ParseNetwork(args[0])
	if err != nil {
		return err
	}

	if err := preferenceStore().SaveNetwork(network); err != nil {
		return err
	}

	logger.Debug("network preference saved network=%s", network)
	return output.FormatSuccess(formatter.Writer(),
		fmt.Sprintf("Network set to %s", network), formatter.Format())
}
