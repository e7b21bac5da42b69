package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// rootCmd is the root command for smbfix.
var rootCmd = &cobra.Command{
	Use:     "smbfix",
	Version: "dev",
	Short:   "Repair filenames for SMB-compatible storage",
	Long: `smbfix scans a directory tree for filenames that SMB/Windows-compatible
storage cannot handle, previews the fixes, and applies them after a single
confirmation.

On macOS it additionally unlocks files and repairs ownership and permissions
before renaming. On Synology NAS and other hosts it is limited to filename
fixes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the smbfix version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(os.Stdout, rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	completionCmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate the autocompletion script for the specified shell",
	}
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "bash",
		Short:                 "Generate the autocompletion script for bash",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenBashCompletion(os.Stdout)
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "zsh",
		Short:                 "Generate the autocompletion script for zsh",
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenZshCompletion(os.Stdout)
		},
	})
	rootCmd.AddCommand(completionCmd)

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(envCmd)
}

// Execute executes the root command. An interrupt cancels the run context:
// the walk and apply loops stop promptly, leaving already-applied
// operations in place.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
