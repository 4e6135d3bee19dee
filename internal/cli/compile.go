package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/scancmdr/internal/compiler"
	"github.com/roach88/scancmdr/internal/job"
	"github.com/roach88/scancmdr/internal/protocol"
	"github.com/roach88/scancmdr/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output      string // output file path
	Database    string // protocol library, optional
	MaxCommands int
}

// CompileSummary is the result of compiling one job.
type CompileSummary struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Scale    int64  `json:"scale"`
	Commands int    `json:"commands"`
	Output   string `json:"output,omitempty"`
	ID       string `json:"id,omitempty"`
	Hash     string `json:"hash,omitempty"`
	Created  bool   `json:"created,omitempty"`
	Protocol string `json:"protocol,omitempty"` // set when no output file is given
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <job-file>",
		Short: "Compile a job into DSP protocol text",
		Long: `Compile a YAML or CUE job file into the scan-control DSP's text format.

The protocol is written to stdout unless --output is given. With --db the
protocol is also stored in the protocol library; compiling the same job
again returns the existing record.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.Database, "db", "", "protocol library database path")
	cmd.Flags().IntVar(&opts.MaxCommands, "max-commands", protocol.DefaultMaxCommands, "command limit, 0 for none")

	return cmd
}

func runCompile(ctx context.Context, opts *CompileOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	j, err := job.Load(path)
	if err != nil {
		return outputCompileError(formatter, err)
	}
	formatter.VerboseLog("Loaded %s job %q from %s", j.Kind, j.Name, path)

	if errs := job.Validate(j); len(errs) > 0 {
		return outputJobErrors(formatter, errs)
	}

	c := compiler.New(compiler.WithLogger(logger), compiler.WithMaxCommands(opts.MaxCommands))
	res, err := job.Compile(j, c)
	if err != nil {
		return fail(formatter, err)
	}

	summary := CompileSummary{
		Name:     j.Name,
		Kind:     string(j.Kind),
		Scale:    res.Scale,
		Commands: strings.Count(res.Text, "\n") - 1,
		Output:   opts.Output,
	}

	if opts.Database != "" {
		rec, created, err := saveProtocol(ctx, opts.Database, j, res.Text)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
		}
		summary.ID, summary.Hash, summary.Created = rec.ID, rec.Hash, created
		logger.Debug("protocol stored", "id", rec.ID, "hash", rec.Hash, "created", created)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(res.Text), 0644); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	return outputCompileSuccess(formatter, summary, res.Text)
}

func saveProtocol(ctx context.Context, dbPath string, j *job.Job, text string) (store.Record, bool, error) {
	s, err := store.Open(dbPath)
	if err != nil {
		return store.Record{}, false, err
	}
	defer s.Close()
	return s.Save(ctx, j.Name, string(j.Kind), j, text)
}

// outputCompileSuccess writes the protocol and a summary. In text mode
// without --output the protocol owns stdout and the summary goes to stderr.
func outputCompileSuccess(formatter *OutputFormatter, summary CompileSummary, text string) error {
	if formatter.Format == "json" {
		if summary.Output == "" {
			summary.Protocol = text
		}
		return formatter.Success(summary)
	}

	w := formatter.Writer
	if summary.Output == "" {
		if _, err := fmt.Fprint(formatter.Writer, text); err != nil {
			return err
		}
		w = formatter.GetErrWriter()
	}

	fmt.Fprintf(w, "✓ Compiled %s job %q: %d command(s), scale %d\n",
		summary.Kind, summary.Name, summary.Commands, summary.Scale)
	if summary.Output != "" {
		fmt.Fprintf(w, "Wrote protocol to %s\n", summary.Output)
	}
	if summary.ID != "" {
		verb := "Stored"
		if !summary.Created {
			verb = "Already stored"
		}
		fmt.Fprintf(w, "%s as %s (%s)\n", verb, summary.ID, shortHash(summary.Hash))
	}
	return nil
}

// outputCompileError reports a job that failed to load, with its CUE
// position when there is one.
func outputCompileError(formatter *OutputFormatter, err error) error {
	var loadErr *job.LoadError
	if !errors.As(err, &loadErr) || formatter.Format == "json" || !loadErr.Pos.IsValid() {
		return fail(formatter, err)
	}
	fmt.Fprintf(formatter.Writer, "%s:%d:%d\n",
		loadErr.Pos.Filename(), loadErr.Pos.Line(), loadErr.Pos.Column())
	_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
	return WrapExitError(ExitCommandError, loadErr.Code, err)
}

// outputJobErrors outputs every validation problem of a job.
func outputJobErrors(formatter *OutputFormatter, errs []job.ValidationError) error {
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("job invalid with %d error(s)", len(errs)))

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   errs,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return exitErr
	}

	fmt.Fprintln(formatter.Writer, "✗ Job invalid")
	fmt.Fprintln(formatter.Writer)
	for _, e := range errs {
		fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", e.Code, e.Field, e.Message)
	}
	return exitErr
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
