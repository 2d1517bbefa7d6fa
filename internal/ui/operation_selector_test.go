package ui

import (
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/vietdv277/cfnperms/pkg/types"
)

func press(m OperationModel, msgs ...tea.Msg) OperationModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(OperationModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOperationModel_SelectAll(t *testing.T) {
	m := press(NewOperationModel("AWS::S3::Bucket"), tea.KeyMsg{Type: tea.KeyEnter})

	op, ok := m.Selected()
	assert.True(t, ok)
	assert.Equal(t, types.Operation(""), op)
}

func TestOperationModel_Navigate(t *testing.T) {
	m := press(NewOperationModel("AWS::S3::Bucket"),
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	op, ok := m.Selected()
	assert.True(t, ok)
	assert.Equal(t, types.OperationRead, op)
}

func TestOperationModel_CursorStaysInBounds(t *testing.T) {
	msgs := []tea.Msg{tea.KeyMsg{Type: tea.KeyUp}}
	for i := 0; i < 10; i++ {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyDown})
	}
	msgs = append(msgs, tea.KeyMsg{Type: tea.KeyEnter})

	op, ok := press(NewOperationModel(""), msgs...).Selected()
	assert.True(t, ok)
	assert.Equal(t, types.OperationList, op)
}

func TestOperationModel_Filter(t *testing.T) {
	m := press(NewOperationModel(""), runes("de"))
	assert.Contains(t, ansi.Strip(m.View()), "delete")
	assert.NotContains(t, ansi.Strip(m.View()), "create")

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	op, ok := m.Selected()
	assert.True(t, ok)
	assert.Equal(t, types.OperationDelete, op)
}

func TestOperationModel_FilterNoMatch(t *testing.T) {
	m := press(NewOperationModel(""), runes("zz"), tea.KeyMsg{Type: tea.KeyEnter})
	_, ok := m.Selected()
	assert.False(t, ok)

	m = press(m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyEnter})
	op, ok := m.Selected()
	assert.True(t, ok)
	assert.Equal(t, types.Operation(""), op)
}

func TestOperationModel_BackspaceMultibyte(t *testing.T) {
	m := press(NewOperationModel(""), runes("dé"))
	assert.Contains(t, ansi.Strip(m.View()), "0/6")

	m = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "d", m.search)
	view := ansi.Strip(m.View())
	assert.True(t, utf8.ValidString(view))
	assert.Contains(t, view, "1/6")

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	op, ok := m.Selected()
	assert.True(t, ok)
	assert.Equal(t, types.OperationDelete, op)
}

func TestOperationModel_Cancel(t *testing.T) {
	m := press(NewOperationModel(""), tea.KeyMsg{Type: tea.KeyEsc})
	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Empty(t, m.View())
}

func TestOperationModel_View(t *testing.T) {
	view := ansi.Strip(NewOperationModel("AWS::S3::Bucket").View())
	assert.Contains(t, view, "Select operation")
	assert.Contains(t, view, "AWS::S3::Bucket")
	assert.Contains(t, view, " > all")
	assert.Contains(t, view, "6/6")
}
