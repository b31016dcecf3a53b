package cli

import (
	"fmt"
	"os"

	"github.com/mph-llm-experiments/adate/internal/config"
)

// EnvState overrides the state file when no --state flag is given.
const EnvState = "ADATE_STATE"

// Run executes the CLI with the given config and arguments.
func Run(cfg *config.Config, args []string) error {
	remaining, err := ParseGlobalFlags(args)
	if err != nil {
		return err
	}

	// Reload config if --config flag was provided
	if globalFlags.Config != "" {
		newCfg, err := config.Load(globalFlags.Config)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = newCfg
	}

	// Override state file if --state flag was provided
	if globalFlags.State != "" {
		cfg.StateFile = globalFlags.State
	}

	// Also check ADATE_STATE env var
	if envState := os.Getenv(EnvState); envState != "" && globalFlags.State == "" {
		cfg.StateFile = envState
	}

	// If no arguments, launch the form
	if len(remaining) == 0 {
		return pickCommand(cfg).Execute(nil)
	}

	root := &Command{
		Name:  "adate",
		Usage: "adate <command> [options]",
		Description: `Keyboard and mouse driven date picking in the terminal.

Commands:
  pick       Fill in the configured date fields (default)
  view       Print a month grid
  parse      Parse a date typed in a custom format
  shift      Move a date by days, weeks, months or years
  clamp      Clamp a date into a range
  last       Show the last submitted values

Global Options:
  --config PATH  Use specific config file
  --state PATH   Override state file
  --json         Output in JSON format
  --no-color     Disable color output
  --quiet, -q    Minimal output`,
	}

	root.Subcommands = append(root.Subcommands,
		pickCommand(cfg),
		viewCommand(cfg),
		parseCommand(cfg),
		shiftCommand(),
		clampCommand(),
		lastCommand(cfg),
	)

	return root.Execute(remaining)
}
