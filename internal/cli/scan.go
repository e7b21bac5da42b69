package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Keav/smbfix/internal/config"
	"github.com/Keav/smbfix/internal/engine"
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a tree and preview fixes without changing anything",
	Long: `Scan walks the given directory (default: current directory), builds the
rename/delete plan, and prints it. Nothing is ever modified.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		eng := newEngine(cfg)

		result, err := eng.Scan(cmd.Context(), &engine.ScanRequest{Root: rootArg(args)})
		if err != nil {
			return err
		}

		if result.Plan.Empty() {
			PrintSuccess("No problematic filenames found.")
			return nil
		}

		printPlan(result.Plan)
		PrintInfo(fmt.Sprintf("Would apply %s. Run 'smbfix fix' to apply.",
			PrintCount(len(result.Plan.Operations), "operation", "operations")))
		return nil
	},
}
