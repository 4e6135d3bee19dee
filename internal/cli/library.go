package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/scancmdr/internal/store"
)

// LibraryOptions holds flags shared by the protocol library commands.
type LibraryOptions struct {
	*RootOptions
	Database string
}

func (o *LibraryOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Database, "db", "", "protocol library database path")
	_ = cmd.MarkFlagRequired("db")
}

// open opens the library, reporting failures through formatter.
func (o *LibraryOptions) open(formatter *OutputFormatter) (*store.Store, error) {
	s, err := store.Open(o.Database)
	if err != nil {
		return nil, formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}
	return s, nil
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LibraryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List stored protocols",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), opts, cmd)
		},
	}
	opts.bind(cmd)

	return cmd
}

func runList(ctx context.Context, opts *LibraryOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	s, err := opts.open(formatter)
	if err != nil {
		return err
	}
	defer s.Close()

	recs, err := s.List(ctx)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(recs)
	}
	if len(recs) == 0 {
		fmt.Fprintln(formatter.Writer, "No protocols stored")
		return nil
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "ID", "Hash", "Name", "Kind", "Commands", "Depth"})
	for _, r := range recs {
		t.AppendRow(table.Row{r.Seq, r.ID, shortHash(r.Hash), r.Name, r.Kind, r.Commands, r.MaxDepth})
	}
	fmt.Fprintln(formatter.Writer, t.Render())
	return nil
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LibraryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <id-or-hash>",
		Short: "Show a stored protocol",
		Long: `Show a stored protocol by record ID or by a hash prefix of at least
8 characters. Text output prints the record followed by the protocol body.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), opts, args[0], cmd)
		},
	}
	opts.bind(cmd)

	return cmd
}

func runShow(ctx context.Context, opts *LibraryOptions, ref string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	s, err := opts.open(formatter)
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.Get(ctx, ref)
	if err != nil {
		return libraryError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(rec)
	}

	t := table.NewWriter()
	t.AppendRows([]table.Row{
		{"ID", rec.ID},
		{"Hash", rec.Hash},
		{"Name", rec.Name},
		{"Kind", rec.Kind},
		{"Commands", rec.Commands},
		{"Loop depth", rec.MaxDepth},
		{"Params", string(rec.Params)},
	})
	fmt.Fprintln(formatter.Writer, t.Render())
	fmt.Fprintln(formatter.Writer)
	fmt.Fprint(formatter.Writer, rec.Body)
	return nil
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LibraryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "delete <id-or-hash>",
		Short:         "Delete a stored protocol",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd.Context(), opts, args[0], cmd)
		},
	}
	opts.bind(cmd)

	return cmd
}

func runDelete(ctx context.Context, opts *LibraryOptions, ref string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	s, err := opts.open(formatter)
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.Get(ctx, ref)
	if err != nil {
		return libraryError(formatter, err)
	}
	if err := s.Delete(ctx, rec.ID); err != nil {
		return libraryError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]string{"deleted": rec.ID})
	}
	fmt.Fprintf(formatter.Writer, "✓ Deleted %s (%s)\n", rec.ID, rec.Name)
	return nil
}

func libraryError(formatter *OutputFormatter, err error) error {
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrAmbiguous) {
		return fail(formatter, err)
	}
	return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
}
