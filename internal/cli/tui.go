package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/floatplace/pkg/errors"
	"github.com/matzehuels/floatplace/pkg/geom"
	"github.com/matzehuels/floatplace/pkg/middleware"
	"github.com/matzehuels/floatplace/pkg/middleware/flip"
	"github.com/matzehuels/floatplace/pkg/pipeline"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ExploreModel - Interactive placement browser
// =============================================================================

// ExploreRow is the outcome of computing a scenario with one requested
// placement.
type ExploreRow struct {
	Requested geom.Placement
	Result    *pipeline.Result
	Err       error
}

// flipped reports whether the pipeline settled on another placement.
func (r ExploreRow) flipped() bool {
	return r.Result != nil && r.Result.Placement != r.Requested
}

// ExploreModel is the bubbletea model for browsing every placement of a
// scenario.
type ExploreModel struct {
	Title  string
	Rows   []ExploreRow
	Cursor int
	Detail bool
}

// NewExploreModel creates a new explore model.
func NewExploreModel(title string, rows []ExploreRow) ExploreModel {
	return ExploreModel{Title: title, Rows: rows}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Rows)-1 {
			m.Cursor++
		}
	case "enter", " ":
		m.Detail = !m.Detail
	}
	return m, nil
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ flip history  q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.table())
	b.WriteString("\n")

	if m.Detail && m.Cursor < len(m.Rows) {
		b.WriteString("\n")
		b.WriteString(m.detail(m.Rows[m.Cursor]))
	}
	return b.String()
}

// table renders one row per requested placement.
func (m ExploreModel) table() string {
	rows := make([][]string, 0, len(m.Rows))
	for i, r := range m.Rows {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		if r.Err != nil {
			rows = append(rows, []string{cursor, string(r.Requested), "error", "", "", "", string(errors.GetCode(r.Err))})
			continue
		}
		res := r.Result
		note := ""
		if r.flipped() {
			note = "flipped"
		}
		rows = append(rows, []string{
			cursor,
			string(r.Requested),
			string(res.Placement),
			formatNumber(res.X),
			formatNumber(res.Y),
			strconv.Itoa(res.Resets),
			note,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Requested", "Final", "X", "Y", "Resets", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if row >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			r := m.Rows[row]
			base := lipgloss.NewStyle()
			switch {
			case r.Err != nil:
				base = base.Foreground(colorRed)
			case r.flipped():
				base = base.Foreground(colorYellow)
			default:
				base = base.Foreground(colorGreen)
			}
			if row == m.Cursor {
				return base.Bold(true)
			}
			return base
		}).
		Render()
}

// detail renders the selected row's error or flip history.
func (m ExploreModel) detail(r ExploreRow) string {
	if r.Err != nil {
		return styleIconError.Render(iconError) + " " + r.Err.Error() + "\n"
	}
	d, ok := middleware.Decode[flip.Data](r.Result.MiddlewareData, flip.Name)
	if !ok || len(d.Overflows) == 0 {
		return listDimStyle.Render(fmt.Sprintf("%s: no flip history", r.Requested)) + "\n"
	}
	return historyTable(d) + "\n"
}
