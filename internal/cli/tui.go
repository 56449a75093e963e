package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/aplet/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// allProducts is the picker entry for the whole product line.
const allProducts = "(all products)"

// =============================================================================
// ProductPickerModel - Interactive product selection
// =============================================================================

// ProductPickerModel is the bubbletea model for choosing which product's
// status to show. The first entry stands for the whole product line.
type ProductPickerModel struct {
	Entries  []pipeline.ProductSummary
	Cursor   int
	Offset   int
	Height   int
	Chosen   bool
	Selected string
}

// NewProductPickerModel creates a picker listing the whole line followed by
// each product.
func NewProductPickerModel(products []pipeline.ProductSummary) ProductPickerModel {
	entries := make([]pipeline.ProductSummary, 0, len(products)+1)
	entries = append(entries, pipeline.ProductSummary{Name: allProducts})
	entries = append(entries, products...)
	return ProductPickerModel{Entries: entries, Height: 15}
}

func (m ProductPickerModel) Init() tea.Cmd {
	return nil
}

func (m ProductPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Chosen = true
			if m.Cursor > 0 {
				m.Selected = m.Entries[m.Cursor].Name
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m ProductPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Product"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entries))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		selected, report := "", ""
		if i > 0 {
			selected = fmt.Sprint(e.Selected)
			report = stateIcon(e.State) + " " + e.State.Resolved().String()
		}
		rows = append(rows, []string{cursor, e.Name, selected, report})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Product", "Selected", "Report").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			if col == 3 && idx > 0 {
				return stateStyle(m.Entries[idx].State)
			}
			if idx == m.Cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

// pickProduct runs the picker. ok is false when the user quit without
// choosing; an empty product means the whole line.
func pickProduct(products []pipeline.ProductSummary) (product string, ok bool, err error) {
	final, err := tea.NewProgram(NewProductPickerModel(products)).Run()
	if err != nil {
		return "", false, err
	}
	m := final.(ProductPickerModel)
	return m.Selected, m.Chosen, nil
}
