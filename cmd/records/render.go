package records

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/Alijeyrad/libremedic_admin/internal/form"
	"github.com/Alijeyrad/libremedic_admin/internal/screen"
)

// printer shows screen notices on w.
func printer(w io.Writer) screen.Notifier {
	return screen.NotifierFunc(func(n screen.Notice) {
		mark := "✓"
		if n.Level == screen.LevelError {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s\n", mark, n.Message)
	})
}

// prompter asks on w and reads the answer from r.
func prompter(r io.Reader, w io.Writer) screen.Confirmer {
	return screen.ConfirmFunc(func(_ context.Context, prompt string) bool {
		fmt.Fprintf(w, "%s [s/N]: ", prompt)
		line, err := bufio.NewReader(r).ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "s", "si", "sí", "y", "yes":
			return true
		default:
			return false
		}
	})
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.AppendBulk(rows)
	table.Render()
}

func renderErrors(w io.Writer, errs form.Errors) {
	rows := make([][]string, 0, len(errs))
	for _, name := range errs.Fields() {
		rows = append(rows, []string{name, errs[name]})
	}
	renderTable(w, []string{"Campo", "Error"}, rows)
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
