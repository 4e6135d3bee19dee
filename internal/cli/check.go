package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/scancmdr/internal/protocol"
)

// CheckResult holds the outcome of checking a protocol file.
type CheckResult struct {
	Valid    bool                       `json:"valid"`
	Commands int                        `json:"commands"`
	MaxDepth int                        `json:"max_depth"`
	Errors   []protocol.ValidationError `json:"errors,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <protocol-file>",
		Short: "Check a protocol file for structural errors",
		Long: `Parse DSP protocol text and check its loop nesting, loop counts and
length against the DSP's protocol memory. Exits 1 when the protocol is malformed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	f, err := os.Open(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeRead, fmt.Sprintf("opening protocol: %v", err), nil)
	}
	defer f.Close()

	l, err := protocol.Parse(f)
	if err != nil {
		return fail(formatter, err)
	}
	cmds := l.Commands()

	result := CheckResult{
		Commands: len(cmds),
		MaxDepth: protocol.MaxDepth(cmds),
		Errors:   protocol.Validate(cmds),
	}
	result.Valid = len(result.Errors) == 0
	formatter.VerboseLog("Parsed %d command(s) from %s", len(cmds), path)

	if result.Valid {
		if formatter.Format == "json" {
			return formatter.Success(result)
		}
		fmt.Fprintf(formatter.Writer, "✓ %s: %d command(s), loop depth %d\n", path, result.Commands, result.MaxDepth)
		return nil
	}
	return outputCheckErrors(formatter, path, result)
}

func outputCheckErrors(formatter *OutputFormatter, path string, result CheckResult) error {
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("protocol invalid with %d error(s)", len(result.Errors)))

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    result.Errors[0].Code,
				Message: result.Errors[0].Message,
			},
		}
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return exitErr
	}

	fmt.Fprintf(formatter.Writer, "✗ %s: %d command(s)\n\n", path, result.Commands)
	for _, e := range result.Errors {
		fmt.Fprintf(formatter.Writer, "  %s\n", e.Error())
	}
	return exitErr
}
