package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TelegramChoiceStep toggles the Telegram notification mirror
type TelegramChoiceStep struct {
	choices []string
	cursor  int
}

func NewTelegramChoiceStep() Step {
	return &TelegramChoiceStep{
		choices: []string{"Yes", "No"},
		cursor:  1,
	}
}

func (s *TelegramChoiceStep) Init() tea.Cmd {
	return nil
}

func (s *TelegramChoiceStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			if s.choices[s.cursor] == "Yes" {
				state.EnvVars["LIFEOS_ENABLE_TELEGRAM"] = "true"
			} else {
				state.EnvVars["LIFEOS_ENABLE_TELEGRAM"] = "false"
			}
			return nil, nil
		}
	}
	return s, nil
}

func (s *TelegramChoiceStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Mirror replies to a Telegram chat?\n\n")
	for i, choice := range s.choices {
		cursor := " "
		if s.cursor == i {
			cursor = "❯"
			b.WriteString(selStyle.Render(fmt.Sprintf("%s %s", cursor, choice)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("%s %s", cursor, choice)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}

// TelegramTokenStep collects the Telegram bot token. Skipped when Telegram
// was declined.
type TelegramTokenStep struct {
	input textinput.Model
}

func NewTelegramTokenStep() Step {
	return &TelegramTokenStep{input: newSecretInput("123456789:ABCDEF...")}
}

func (s *TelegramTokenStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *TelegramTokenStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if state.EnvVars["LIFEOS_ENABLE_TELEGRAM"] != "true" {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		state.EnvVars["TELEGRAM_TOKEN"] = s.input.Value()
		return nil, nil
	}
	return s, cmd
}

func (s *TelegramTokenStep) View(state *InstallState) string {
	return "Enter your Telegram Bot Token:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

// TelegramOwnerStep collects the Telegram owner ID. Skipped when Telegram
// was declined.
type TelegramOwnerStep struct {
	input textinput.Model
}

func NewTelegramOwnerStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "123456789"

	return &TelegramOwnerStep{input: ti}
}

func (s *TelegramOwnerStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *TelegramOwnerStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if state.EnvVars["LIFEOS_ENABLE_TELEGRAM"] != "true" {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		state.EnvVars["TELEGRAM_OWNER_ID"] = s.input.Value()
		return nil, nil
	}
	return s, cmd
}

func (s *TelegramOwnerStep) View(state *InstallState) string {
	return "Enter your Telegram User ID (Owner):\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}
