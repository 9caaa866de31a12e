package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stackskit/stackskit/internal/output"
	"github.com/stackskit/stackskit/internal/provider"
	"github.com/stackskit/stackskit/internal/session"
	kiterr "github.com/stackskit/stackskit/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// sessionStatusQR renders the connected address as a QR code.
	sessionStatusQR bool
)

// sessionCmd is the parent command for wallet session operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the wallet session",
	Long: `Manage the wallet session.

A session tracks whether a wallet has disclosed a Stacks address, which
address is active, and which network is selected. The selected network is
persisted and survives disconnects.`,
}

// sessionConnectCmd requests addresses from the wallet bridge.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var sessionConnectCmd = &cobra.Command{
	Use:     "connect",
	Short:   "Connect to a wallet",
	Long:    `Request addresses from the wallet bridge and establish a session.`,
	Example: `  stackskit session connect`,
	RunE:    runSessionConnect,
}

// sessionDisconnectCmd clears the session.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var sessionDisconnectCmd = &cobra.Command{
	Use:     "disconnect",
	Short:   "Disconnect the wallet session",
	Long:    `Clear the wallet session. The selected network is kept.`,
	Example: `  stackskit session disconnect`,
	RunE:    runSessionDisconnect,
}

// sessionStatusCmd shows the session state.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var sessionStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show the session state",
	Example: `  stackskit session status`,
	RunE:    runSessionStatus,
}

// sessionRecoverCmd restores a session from wallet-persisted addresses.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var sessionRecoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Restore a session from wallet-persisted addresses",
	Long: `Restore a session from addresses the wallet persisted in an earlier
connect. No wallet prompt is shown; if no addresses are stored, the session
stays disconnected.`,
	Example: `  stackskit session recover`,
	RunE:    runSessionRecover,
}

// SessionStatusResponse is the JSON response for session status.
type SessionStatusResponse struct {
	Status     string `json:"status"`
	Address    string `json:"address,omitempty"`
	BTCAddress string `json:"btc_address,omitempty"`
	Network    string `json:"network"`
	Error      string `json:"error,omitempty"`
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionConnectCmd)
	sessionCmd.AddCommand(sessionDisconnectCmd)
	sessionCmd.AddCommand(sessionStatusCmd)
	sessionCmd.AddCommand(sessionRecoverCmd)

	sessionStatusCmd.Flags().BoolVar(&sessionStatusQR, "qr", false, "render the connected address as a QR code")
}

// newSessionManager builds a session manager over the wallet bridge with the
// persisted network preference store.
func newSessionManager() *session.Manager {
	return session.NewManager(provider.NewUnavailable(), preferenceStore())
}

func runSessionConnect(cmd *cobra.Command, _ []string) error {
	mgr := newSessionManager()

	ctx, cancel := contextWithTimeout(cmd, cfg.APITimeout())
	defer cancel()

	if !mgr.Connect(ctx) {
		state := mgr.State()
		if state.Err != nil {
			return state.Err
		}
		return kiterr.ErrWalletUnavailable
	}

	logger.Debug("session connected address=%s", mgr.Address())
	return sessionStatusOutput(mgr.State())
}

func runSessionDisconnect(cmd *cobra.Command, _ []string) error {
	mgr := newSessionManager()

	ctx, cancel := contextWithTimeout(cmd, cfg.APITimeout())
	defer cancel()

	mgr.Disconnect(ctx)
	return output.FormatSuccess(formatter.Writer(), "Disconnected", formatter.Format())
}

func runSessionStatus(cmd *cobra.Command, _ []string) error {
	mgr := newSessionManager()

	ctx, cancel := contextWithTimeout(cmd, cfg.APITimeout())
	defer cancel()

	// Best effort: surface a restorable session in status output.
	mgr.Recover(ctx)

	state := mgr.State()
	if err := sessionStatusOutput(state); err != nil {
		return err
	}

	if sessionStatusQR && state.Address != "" && !formatter.IsJSON() {
		return output.RenderQR(os.Stdout, state.Address, output.DefaultQRConfig())
	}
	return nil
}

func runSessionRecover(cmd *cobra.Command, _ []string) error {
	mgr := newSessionManager()

	ctx, cancel := contextWithTimeout(cmd, cfg.APITimeout())
	defer cancel()

	if !mgr.Recover(ctx) {
		return kiterr.WithSuggestion(
			kiterr.New("NO_STORED_SESSION", "no stored session to recover"),
			"Run 'stackskit session connect' to establish a session",
		)
	}
	return sessionStatusOutput(mgr.State())
}

// sessionStatusOutput renders the session state.
func sessionStatusOutput(state session.State) error {
	resp := SessionStatusResponse{
		Status:     string(state.Status()),
		Address:    state.Address,
		BTCAddress: state.BTCAddress,
		Network:    state.Network.String(),
	}
	if state.Err != nil {
		resp.Error = state.Err.Error()
	}

	if formatter.IsJSON() {
		return formatter.Print(resp)
	}

	tbl := output.NewTable()
	tbl.SetNoHeader(true)
	tbl.AddRow("Status:", resp.Status)
	if resp.Address != "" {
		tbl.AddRow("Address:", resp.Address)
	}
	if resp.BTCAddress != "" {
		tbl.AddRow("BTC address:", resp.BTCAddress)
	}
	tbl.AddRow("Network:", resp.Network)
	if resp.Error != "" {
		tbl.AddRow("Last error:", resp.Error)
	}
	return formatter.Printf("%s", tbl.String())
}
