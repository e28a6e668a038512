package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Yachtguy502/Analyze-Active-Listings/internal/exporter"
)

var (
	accentColor = lipgloss.Color("#2196F3")
	mutedColor  = lipgloss.Color("#8A8F98")
	borderColor = lipgloss.Color("#3C4A5F")
)

// TablePresenter renders analysis output to a terminal. Colors are dropped
// automatically when out is not a TTY.
type TablePresenter struct {
	out      io.Writer
	heading  lipgloss.Style
	message  lipgloss.Style
	empty    lipgloss.Style
	header   lipgloss.Style
	cell     lipgloss.Style
	number   lipgloss.Style
	border   lipgloss.Style
	headings int
}

// NewTablePresenter creates a presenter writing to out.
func NewTablePresenter(out io.Writer) *TablePresenter {
	r := lipgloss.NewRenderer(out)
	return &TablePresenter{
		out:     out,
		heading: r.NewStyle().Bold(true).Foreground(accentColor),
		message: r.NewStyle(),
		empty:   r.NewStyle().Italic(true).Foreground(mutedColor),
		header:  r.NewStyle().Bold(true).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
		number:  r.NewStyle().Padding(0, 1).Align(lipgloss.Right),
		border:  r.NewStyle().Foreground(borderColor),
	}
}

// Heading prints text as a section title.
func (p *TablePresenter) Heading(ctx context.Context, text string) error {
	if p.headings > 0 {
		if _, err := fmt.Fprintln(p.out); err != nil {
			return err
		}
	}
	p.headings++
	_, err := fmt.Fprintln(p.out, p.heading.Render(text))
	return err
}

// Message prints a line of plain text.
func (p *TablePresenter) Message(ctx context.Context, text string) error {
	_, err := fmt.Fprintln(p.out, p.message.Render(text))
	return err
}

// Table prints t with a rounded border. The first column is left aligned,
// the remaining columns are numbers for the band table and text otherwise.
func (p *TablePresenter) Table(ctx context.Context, t exporter.Table) error {
	if len(t.Rows) == 0 {
		_, err := fmt.Fprintln(p.out, p.empty.Render("(none)"))
		return err
	}

	numeric := numericColumns(t)
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.border).
		Headers(t.Headers...).
		Rows(t.Records()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return p.header
			case col < len(numeric) && numeric[col]:
				return p.number
			default:
				return p.cell
			}
		})

	_, err := fmt.Fprintln(p.out, tbl.Render())
	return err
}

// numericColumns reports which columns hold no text in any row.
func numericColumns(t exporter.Table) []bool {
	numeric := make([]bool, len(t.Headers))
	for col := range numeric {
		numeric[col] = len(t.Rows) > 0
		for _, row := range t.Rows {
			if col >= len(row) {
				continue
			}
			if _, isText := row[col].(string); isText {
				numeric[col] = false
				break
			}
		}
	}
	return numeric
}
