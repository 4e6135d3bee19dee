package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/scancmdr/internal/job"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	Output string
	Force  bool
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	kinds := make([]string, len(job.Kinds))
	for i, k := range job.Kinds {
		kinds[i] = string(k)
	}

	cmd := &cobra.Command{
		Use:       "init <kind>",
		Short:     "Write a template job file",
		Long:      "Write a YAML job for the given kind, filled with typical values.\n\nKinds: " + strings.Join(kinds, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: kinds,

		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (default stdout)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing output file")

	return cmd
}

func runInit(opts *InitOptions, kind string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	j, err := job.Template(job.Kind(kind))
	if err != nil {
		return formatter.Fail(ExitCommandError, job.ErrJobKind, err.Error(), nil)
	}

	var buf bytes.Buffer
	if err := job.WriteYAML(&buf, j); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	if opts.Output == "" {
		_, err := formatter.Writer.Write(buf.Bytes())
		return err
	}

	if !opts.Force {
		if _, err := os.Stat(opts.Output); err == nil {
			return formatter.Fail(ExitCommandError, ErrCodeExists, fmt.Sprintf("%s already exists (use --force to overwrite)", opts.Output), nil)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, err.Error(), nil)
		}
	}
	if err := os.WriteFile(opts.Output, buf.Bytes(), 0644); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing job file: %v", err), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]string{"kind": kind, "output": opts.Output})
	}
	fmt.Fprintf(formatter.Writer, "✓ Wrote %s job template to %s\n", kind, opts.Output)
	return nil
}
