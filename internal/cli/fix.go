package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Keav/smbfix/internal/config"
	"github.com/Keav/smbfix/internal/engine"
)

var (
	fixYes    bool
	fixDryRun bool
)

var fixCmd = &cobra.Command{
	Use:   "fix [path]",
	Short: "Scan a tree, confirm, and apply filename fixes",
	Long: `Fix walks the given directory (default: current directory), repairs
permissions and locks where the platform supports it, previews every planned
rename and deletion, and applies the plan after one confirmation.

Declining the confirmation leaves the filesystem untouched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		eng := newEngine(cfg)
		ctx := cmd.Context()

		scanResult, err := eng.Scan(ctx, &engine.ScanRequest{Root: rootArg(args)})
		if err != nil {
			return err
		}

		plan := scanResult.Plan
		if plan.Empty() {
			PrintSuccess("No problematic filenames found.")
			return nil
		}

		printPlan(plan)

		if fixDryRun {
			PrintInfo(fmt.Sprintf("Dry run: would apply %s.",
				PrintCount(len(plan.Operations), "operation", "operations")))
			return nil
		}

		if !fixYes && !cfg.AssumeYes && !promptConfirm("🔄 Apply all changes?") {
			PrintInfo("❌ No changes were made.")
			return nil
		}

		applyResult, err := eng.Apply(ctx, &engine.ApplyRequest{Plan: plan})
		if err != nil {
			// Interrupted: already-applied operations stay applied.
			return err
		}

		summary := fmt.Sprintf("Applied %s", PrintCount(applyResult.Applied(), "operation", "operations"))
		if n := applyResult.Skipped(); n > 0 {
			summary += fmt.Sprintf(", %d skipped", n)
		}
		if n := applyResult.Failed(); n > 0 {
			summary += fmt.Sprintf(", %d failed", n)
		}
		PrintSuccess(summary + ". Check your files.")
		return nil
	},
}

func init() {
	fixCmd.Flags().BoolVarP(&fixYes, "yes", "y", false, "Apply without asking for confirmation")
	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "Show what would be applied without applying")
}
