package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/stackskit/stackskit/internal/metrics"
	"github.com/stackskit/stackskit/internal/output"
	"github.com/stackskit/stackskit/internal/version"
)

const (
	// releaseOwner is the GitHub repository owner for release checks.
	releaseOwner = "stackskit"
	// releaseRepo is the GitHub repository name for release checks.
	releaseRepo = "stackskit"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// versionCheck queries GitHub for a newer release.
	versionCheck bool
)

// versionCmd prints build information.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Example: `  stackskit version
  stackskit version --check`,
	RunE: runVersion,
}

// VersionResponse is the JSON response for the version command.
type VersionResponse struct {
	Version         string `json:"version"`
	Commit          string `json:"commit,omitempty"`
	BuildDate       string `json:"build_date,omitempty"`
	GoVersion       string `json:"go_version"`
	Platform        string `json:"platform"`
	Latest          string `json:"latest,omitempty"`
	UpdateAvailable bool   `json:"update_available,omitempty"`
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "check GitHub for a newer release")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	resp := VersionResponse{
		Version:   version.Current(),
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	if versionCheck {
		ctx, cancel := contextWithTimeout(cmd, version.DefaultTimeout)
		defer cancel()

		release, err := version.GetLatestRelease(ctx, releaseOwner, releaseRepo)
		if err != nil {
			return err
		}
		resp.Latest = version.NormalizeVersion(release.TagName)
		resp.UpdateAvailable = version.IsNewerVersion(resp.Version, resp.Latest)
	}

	if formatter.IsJSON() {
		return formatter.Print(resp)
	}

	tbl := output.NewTable()
	tbl.SetNoHeader(true)
	tbl.AddRow("Version:", resp.Version)
	if resp.Commit != "" {
		tbl.AddRow("Commit:", resp.Commit)
	}
	if resp.BuildDate != "" {
		tbl.AddRow("Built:", resp.BuildDate)
	}
	tbl.AddRow("Go:", resp.GoVersion)
	tbl.AddRow("Platform:", resp.Platform)
	if resp.Latest != "" {
		tbl.AddRow("Latest:", resp.Latest)
	}
	if err := formatter.Printf("%s", tbl.String()); err != nil {
		return err
	}

	if resp.UpdateAvailable {
		output.Infof("A newer release is available: %s", resp.Latest)
	}

	if cfg.IsVerbose() {
		snap := metrics.Global.Snapshot()
		logger.Debug("metrics api_calls=%d api_errors=%d poll_ticks=%d",
			snap.APICallsTotal, snap.APIErrorsTotal, snap.PollTicksTotal)
	}
	return nil
}
