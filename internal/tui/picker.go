// Package tui implements the interactive account picker shown when a batch
// of events needs a funding account chosen.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ledgertalk/ledgertalk/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFE66D"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type pickerItem struct {
	target model.SelectedAccount
}

func (i pickerItem) Title() string {
	if i.target.Icon != "" {
		return i.target.Icon + " " + i.target.Name
	}
	return i.target.Name
}

func (i pickerItem) Description() string {
	if i.target.IsCard {
		return "credit card"
	}
	return "account"
}

func (i pickerItem) FilterValue() string {
	return i.target.Name
}

type pickerModel struct {
	list   list.Model
	choice *model.SelectedAccount
}

func newPickerModel(question string, targets []model.SelectedAccount) pickerModel {
	items := make([]list.Item, 0, len(targets))
	for _, t := range targets {
		items = append(items, pickerItem{target: t})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = question
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(len(targets) > 6)

	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(pickerItem); ok {
				choice := item.target
				m.choice = &choice
			}
			return m, tea.Quit
		case "esc", "ctrl+c", "q":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	return m.list.View() + "\n" + helpStyle.Render("enter: choose  esc: cancel")
}

// RunPicker shows the account chooser and blocks until the user picks a
// target or dismisses it. The second return value reports whether a choice
// was made.
func RunPicker(question string, targets []model.SelectedAccount) (model.SelectedAccount, bool, error) {
	if len(targets) == 0 {
		return model.SelectedAccount{}, false, nil
	}

	program := tea.NewProgram(newPickerModel(question, targets))
	final, err := program.Run()
	if err != nil {
		return model.SelectedAccount{}, false, fmt.Errorf("picker failed: %w", err)
	}

	result, ok := final.(pickerModel)
	if !ok || result.choice == nil {
		return model.SelectedAccount{}, false, nil
	}
	return *result.choice, true, nil
}
