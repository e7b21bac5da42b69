package cli

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Keav/smbfix/internal/config"
	"github.com/Keav/smbfix/internal/platform"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Report the detected platform profile and configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile := platform.Detect()
		cfg := config.Load()

		PrintSection("Environment")
		PrintInfo(fmt.Sprintf("  Go:       %s (%s/%s)", runtime.Version(), runtime.GOOS, runtime.GOARCH))
		PrintInfo(fmt.Sprintf("  Profile:  %s", profile.Kind))
		PrintInfo(fmt.Sprintf("  Platform: %s", profile.Describe()))

		if profile.FullCapability() {
			if err := exec.Command("sudo", "-n", "true").Run(); err != nil {
				PrintWarning("sudo access: requires password - will prompt during execution")
			} else {
				PrintSuccess("sudo access: available")
			}
		}

		PrintSection("Configuration")
		if len(cfg.ExtraExcludes) > 0 {
			PrintInfo(fmt.Sprintf("  Extra excludes: %s", strings.Join(cfg.ExtraExcludes, ", ")))
		} else {
			PrintInfo("  Extra excludes: (none)")
		}
		PrintInfo(fmt.Sprintf("  Assume yes:     %v", cfg.AssumeYes))
		PrintInfo(fmt.Sprintf("  Repair pass:    %v", profile.FullCapability() && !cfg.NoRepair))
		return nil
	},
}
