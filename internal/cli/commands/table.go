package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/WolffM/vibecheck/internal/cli/output"
)

// renderTable writes rows as a box table, or as a markdown table when the
// renderer is not in text mode.
func renderTable(r *output.Renderer, header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)

	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}
