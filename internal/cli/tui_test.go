package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/aplet/pkg/fm"
	"github.com/matzehuels/aplet/pkg/pipeline"
)

func pickerModel() ProductPickerModel {
	return NewProductPickerModel([]pipeline.ProductSummary{
		{Name: "Basic", Selected: 4, State: fm.Passed},
		{Name: "Full", Selected: 6, State: fm.Failed},
	})
}

func press(m ProductPickerModel, keys ...tea.KeyMsg) (ProductPickerModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(ProductPickerModel)
	}
	return m, cmd
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

func TestProductPickerEntries(t *testing.T) {
	m := pickerModel()

	if len(m.Entries) != 3 || m.Entries[0].Name != allProducts {
		t.Fatalf("entries = %+v", m.Entries)
	}
}

func TestProductPickerSelectAll(t *testing.T) {
	m, cmd := press(pickerModel(), keyEnter)

	if !m.Chosen || m.Selected != "" {
		t.Errorf("Chosen = %v, Selected = %q; want whole line", m.Chosen, m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestProductPickerSelectProduct(t *testing.T) {
	m, _ := press(pickerModel(), keyDown, keyDown, keyDown, keyUp, keyEnter)

	if m.Selected != "Basic" {
		t.Errorf("Selected = %q, want Basic", m.Selected)
	}
}

func TestProductPickerQuit(t *testing.T) {
	m, cmd := press(pickerModel(), keyDown, keyQuit)

	if m.Chosen {
		t.Error("quitting should not choose")
	}
	if cmd == nil {
		t.Error("q should quit the program")
	}
}

func TestProductPickerScrolls(t *testing.T) {
	m := pickerModel()
	m.Height = 1

	m, _ = press(m, keyDown, keyDown)
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}
	m, _ = press(m, keyUp)
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1", m.Offset)
	}
}

func TestProductPickerWindowSize(t *testing.T) {
	next, _ := pickerModel().Update(tea.WindowSizeMsg{Width: 80, Height: 8})

	if got := next.(ProductPickerModel).Height; got != 5 {
		t.Errorf("Height = %d, want 5", got)
	}
}

func TestProductPickerView(t *testing.T) {
	view := pickerModel().View()

	for _, want := range []string{"Select Product", allProducts, "Basic", "passed", "Full", "failed", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
