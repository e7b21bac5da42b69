package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	// Color functions - fatih/color disables itself when output is not a TTY
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)

	// Preview colors: yellow old path, cyan arrow, green new path.
	oldPathColor = color.New(color.FgYellow)
	arrowColor   = color.New(color.FgCyan, color.Bold)
	newPathColor = color.New(color.FgGreen)
	deleteColor  = color.New(color.FgRed)
)

// PrintSection prints a section header.
func PrintSection(title string) {
	fmt.Println()
	_, _ = headerColor.Printf("▸ %s\n", title)
	fmt.Println()
}

// PrintSuccess prints a success message with a checkmark.
func PrintSuccess(msg string) {
	_, _ = successColor.Printf("✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol.
func PrintWarning(msg string) {
	_, _ = warningColor.Printf("⚠ %s\n", msg)
}

// PrintError prints an error message to stderr.
func PrintError(msg string) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ %s\n", msg)
}

// PrintInfo prints an informational message.
func PrintInfo(msg string) {
	fmt.Println(msg)
}

// PrintRenameLine prints one planned rename in preview style.
func PrintRenameLine(oldPath, newPath string) {
	fmt.Print("  - ")
	_, _ = oldPathColor.Print(oldPath)
	_, _ = arrowColor.Print(" ==> ")
	_, _ = newPathColor.Println(newPath)
}

// PrintDeleteLine prints one planned deletion in preview style.
func PrintDeleteLine(path, reason string) {
	fmt.Print("  - ")
	_, _ = deleteColor.Printf("delete (%s) ", reason)
	_, _ = oldPathColor.Println(path)
}

// PrintCount formats a count with singular/plural wording.
func PrintCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
