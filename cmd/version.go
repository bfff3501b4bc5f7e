package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/release"
)

// version is set via -ldflags at build time.
var version = release.DevVersion

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "lingua", version)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		res, err := release.NewChecker().Check(ctx, &release.CheckInput{Version: version})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		switch {
		case res.UpdateAvailable:
			fmt.Fprintf(out, "A newer release is available: %s\n%s\n", res.LatestVersion, res.ReleaseURL)
		case version == release.DevVersion:
			fmt.Fprintf(out, "Development build; latest release is %s.\n", res.LatestVersion)
		default:
			fmt.Fprintln(out, "You are running the latest release.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}
