package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Keav/smbfix/internal/clock"
	"github.com/Keav/smbfix/internal/config"
	"github.com/Keav/smbfix/internal/engine"
	"github.com/Keav/smbfix/internal/fsops"
	"github.com/Keav/smbfix/internal/planner"
	"github.com/Keav/smbfix/internal/platform"
	"github.com/Keav/smbfix/internal/repair"
	"github.com/Keav/smbfix/internal/report"
)

// newEngine creates an engine with real implementations of all dependencies.
func newEngine(cfg *config.Config) *engine.Engine {
	fs := fsops.NewRealFS()
	profile := platform.Detect()
	sink := report.NewConsole()

	var repairer engine.Repairer
	if profile.FullCapability() {
		session := repair.NewSession(repair.CurrentUser(), repair.TerminalPrompt)
		repairer = repair.NewFixer(session, sink)
	}

	return engine.New(fs, profile, cfg, repairer, sink, &clock.RealClock{})
}

// rootArg returns the scan root from args, defaulting to the current
// directory.
func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// printPlan prints the preview of every planned operation plus warnings.
func printPlan(plan *planner.Plan) {
	PrintSection("The following changes will be made")
	for _, op := range plan.Operations {
		switch op.Kind {
		case planner.OpRename:
			PrintRenameLine(op.OriginalPath, op.TargetPath)
		case planner.OpDeleteAlias:
			PrintDeleteLine(op.OriginalPath, "alias")
		case planner.OpDeleteIcon:
			PrintDeleteLine(op.OriginalPath, "icon file")
		case planner.OpDeleteShortcut:
			PrintDeleteLine(op.OriginalPath, "shortcut")
		}
	}
	fmt.Println()
}

// promptConfirm prompts the user for a yes/no confirmation.
func promptConfirm(prompt string) bool {
	fmt.Printf("%s (yes/no): ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
