package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/libremedic_admin/internal/screen"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

func newResourceCommand[T, F any](kind screen.Kind[T, F], backendOf func(*clinicapi.Client) screen.Backend[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   kind.Name,
		Short: kind.Labels.Title,
	}

	backend := func(cmd *cobra.Command) (screen.Backend[T], error) {
		c, err := newClient(cmd)
		if err != nil {
			return nil, err
		}
		return backendOf(c), nil
	}

	cmd.AddCommand(
		newListCommand(kind, backend),
		newShowCommand(kind, backend),
		newSubmitCommand(kind, backend, false),
		newSubmitCommand(kind, backend, true),
		newDeleteCommand(kind, backend),
	)
	return cmd
}

type backendFunc[T any] func(cmd *cobra.Command) (screen.Backend[T], error)

func parseIDArg(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido: %q", s)
	}
	return id, nil
}

func newListCommand[T, F any](kind screen.Kind[T, F], backend backendFunc[T]) *cobra.Command {
	var search string
	var stats bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + kind.Name,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := backend(cmd)
			if err != nil {
				return err
			}

			l := screen.NewList(kind, b, printer(cmd.ErrOrStderr()))
			defer l.Close()

			if st := l.Load(cmd.Context()); st.IsFailed() {
				return fmt.Errorf("%w: %s", screen.ErrRequest, st.Err)
			}

			items := l.Filter(search)
			rows := make([][]string, 0, len(items))
			for _, it := range items {
				rows = append(rows, kind.Row(it))
			}
			renderTable(cmd.OutOrStdout(), kind.Columns, rows)
			fmt.Fprintf(cmd.OutOrStdout(), "%d de %d\n", len(items), len(l.State().Data))

			if stats {
				return renderJSON(cmd.OutOrStdout(), l.Stats(time.Now))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive filter over the loaded records")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print summary statistics")
	return cmd
}

func newShowCommand[T, F any](kind screen.Kind[T, F], backend backendFunc[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			b, err := backend(cmd)
			if err != nil {
				return err
			}

			d := screen.NewDetail(kind, b)
			defer d.Close()

			rec, err := d.Load(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("%s (volver a %s)", d.State().Err, d.BackPath())
			}
			return renderJSON(cmd.OutOrStdout(), rec)
		},
	}
}

func newSubmitCommand[T, F any](kind screen.Kind[T, F], backend backendFunc[T], editing bool) *cobra.Command {
	var file string

	use, short, posArgs := "create", "Create a record from a JSON form", cobra.PositionalArgs(cobra.NoArgs)
	if editing {
		use, short, posArgs = "update <id>", "Update a record from a JSON form", cobra.ExactArgs(1)
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  posArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := readForm(cmd, kind, file)
			if err != nil {
				return err
			}
			b, err := backend(cmd)
			if err != nil {
				return err
			}

			n := printer(cmd.ErrOrStderr())
			e := screen.NewCreator(kind, b, n)
			if editing {
				id, err := parseIDArg(args[0])
				if err != nil {
					return err
				}
				e = screen.NewUpdater(kind, b, n, id)
			}
			e.Form().SetData(rec)

			redirect, err := e.Submit(cmd.Context())
			if errors.Is(err, screen.ErrValidation) {
				renderErrors(cmd.ErrOrStderr(), e.Form().Errors())
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), redirect)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON form record, - for stdin")
	return cmd
}

func readForm[T, F any](cmd *cobra.Command, kind screen.Kind[T, F], file string) (F, error) {
	rec := kind.Blank()

	var r io.Reader = cmd.InOrStdin()
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return rec, err
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return rec, fmt.Errorf("decode form: %w", err)
	}
	return rec, nil
}

func newDeleteCommand[T, F any](kind screen.Kind[T, F], backend backendFunc[T]) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			b, err := backend(cmd)
			if err != nil {
				return err
			}

			l := screen.NewList(kind, b, printer(cmd.ErrOrStderr()))
			defer l.Close()

			confirm := prompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			if yes {
				confirm = screen.Confirmed
			}

			err = l.Delete(cmd.Context(), id, confirm)
			if errors.Is(err, screen.ErrNotConfirmed) {
				fmt.Fprintln(cmd.ErrOrStderr(), "cancelado")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "quedan %d registros\n", len(l.State().Data))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
