package report

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/mkarlsen/plansum/types"
)

// WriteError reports an unwritable markdown output path. It is fatal
// to the run; the report was requested and cannot be delivered.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write report %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Markdown renders the report as a markdown table, same rows and
// order as the console table but without color, suitable for a pull
// request comment.
func Markdown(r types.Report) string {
	tw := table.Table{}
	tw.AppendHeader(header)
	for _, row := range r.Rows {
		tw.AppendRow(markdownRow(row))
	}

	return tw.RenderMarkdown() + "\n"
}

// WriteMarkdown writes the markdown report to path
func WriteMarkdown(path string, r types.Report) error {
	if err := os.WriteFile(path, []byte(Markdown(r)), 0644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// markdownRow builds one plain table row, dashes for failed accounts
func markdownRow(s types.AccountSummary) table.Row {
	if s.Failed() {
		return table.Row{s.Account, "-", "-", "-"}
	}
	return table.Row{
		s.Account,
		strconv.Itoa(s.Add),
		strconv.Itoa(s.Change),
		strconv.Itoa(s.Destroy),
	}
}
