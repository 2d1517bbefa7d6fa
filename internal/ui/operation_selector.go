package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/vietdv277/cfnperms/pkg/types"
)

const (
	selectorWidth    = 48
	allOperationsKey = "all"
)

// ErrSelectionCancelled is returned when the user leaves a selector without
// choosing
var ErrSelectionCancelled = errors.New("selection cancelled")

type operationChoice struct {
	key         string
	description string
}

func operationChoices() []operationChoice {
	choices := []operationChoice{{key: allOperationsKey, description: "every handler in the schema"}}
	descriptions := map[types.Operation]string{
		types.OperationCreate: "provision the resource",
		types.OperationRead:   "describe a single resource",
		types.OperationUpdate: "modify the resource",
		types.OperationDelete: "remove the resource",
		types.OperationList:   "enumerate resources",
	}
	for _, op := range types.AllOperations {
		choices = append(choices, operationChoice{key: string(op), description: descriptions[op]})
	}
	return choices
}

// OperationModel represents the bubbletea model for operation selection
type OperationModel struct {
	resourceType string
	choices      []operationChoice
	filtered     []operationChoice
	cursor       int
	search       string
	selected     *operationChoice
	quitting     bool
	cancelled    bool
}

// NewOperationModel creates a new operation selector model
func NewOperationModel(resourceType string) OperationModel {
	choices := operationChoices()
	return OperationModel{
		resourceType: resourceType,
		choices:      choices,
		filtered:     choices,
	}
}

// Init implements tea.Model
func (m OperationModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m OperationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		m.cancelled = true
		return m, tea.Quit

	case tea.KeyEnter:
		if len(m.filtered) > 0 {
			m.selected = &m.filtered[m.cursor]
			m.quitting = true
			return m, tea.Quit
		}

	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case tea.KeyDown:
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}

	case tea.KeyBackspace:
		if r := []rune(m.search); len(r) > 0 {
			m.search = string(r[:len(r)-1])
			m.filterChoices()
		}

	case tea.KeyRunes:
		m.search += string(key.Runes)
		m.filterChoices()
	}

	return m, nil
}

func (m *OperationModel) filterChoices() {
	if m.search == "" {
		m.filtered = m.choices
	} else {
		query := strings.ToLower(m.search)
		m.filtered = nil
		for _, c := range m.choices {
			if strings.HasPrefix(c.key, query) {
				m.filtered = append(m.filtered, c)
			}
		}
	}
	if m.cursor >= len(m.filtered) {
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		} else {
			m.cursor = 0
		}
	}
}

// Selected returns the chosen operation. "" means all operations.
func (m OperationModel) Selected() (types.Operation, bool) {
	if m.selected == nil || m.cancelled {
		return "", false
	}
	if m.selected.key == allOperationsKey {
		return "", true
	}
	return types.Operation(m.selected.key), true
}

// View implements tea.Model
func (m OperationModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	w := selectorWidth

	writeBoxLine := func(text string, render func(...string) string) {
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString(render(padRight(text, w)))
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString("\n")
	}

	// Top border
	sb.WriteString(BorderStyle.Render(TopLeft + strings.Repeat(Horizontal, w) + TopRight))
	sb.WriteString("\n")

	writeBoxLine(" Select operation", HeaderStyle.Render)
	if m.resourceType != "" {
		writeBoxLine(" "+m.resourceType, MutedStyle.Render)
	}

	sb.WriteString(BorderStyle.Render(LeftT + strings.Repeat(Horizontal, w) + RightT))
	sb.WriteString("\n")

	writeBoxLine(" > "+m.search, PermissionStyle.Render)
	writeBoxLine("", MutedStyle.Render)

	for i := range m.choices {
		if i < len(m.filtered) {
			writeBoxLine(m.renderChoice(i), m.choiceRender(i))
		} else {
			writeBoxLine("", MutedStyle.Render)
		}
	}

	// Bottom border
	sb.WriteString(BorderStyle.Render(BottomLeft + strings.Repeat(Horizontal, w) + BottomRight))
	sb.WriteString("\n")

	sb.WriteString(m.renderStatusBar())

	return sb.String()
}

func (m OperationModel) renderChoice(idx int) string {
	c := m.filtered[idx]
	prefix := "   "
	if idx == m.cursor {
		prefix = " > "
	}
	return prefix + padRight(c.key, 8) + "  " + c.description
}

func (m OperationModel) choiceRender(idx int) func(...string) string {
	if idx == m.cursor {
		return SelectedStyle.Render
	}
	return OperationStyle.Render
}

func (m OperationModel) renderStatusBar() string {
	w := selectorWidth + 2

	countInfo := fmt.Sprintf("  %d/%d", len(m.filtered), len(m.choices))
	hintsPlain := "[Enter:select] [Esc:cancel]"

	padding := w - runewidth.StringWidth(countInfo) - runewidth.StringWidth(hintsPlain)

	var sb strings.Builder
	sb.WriteString(countInfo)
	if padding > 0 {
		sb.WriteString(strings.Repeat(" ", padding))
	}
	sb.WriteString(HintStyle.Render(hintsPlain))
	sb.WriteString("\n")

	return sb.String()
}

// SelectOperation displays an interactive operation selector. The returned
// operation is "" when the user chose all operations.
func SelectOperation(resourceType string, opts ...tea.ProgramOption) (types.Operation, error) {
	p := tea.NewProgram(NewOperationModel(resourceType), opts...)

	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running selector: %w", err)
	}

	op, ok := finalModel.(OperationModel).Selected()
	if !ok {
		return "", ErrSelectionCancelled
	}

	return op, nil
}
