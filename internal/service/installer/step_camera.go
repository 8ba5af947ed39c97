package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// CameraURLStep collects the snapshot endpoint of the glasses camera
type CameraURLStep struct {
	input textinput.Model
}

func NewCameraURLStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "http://192.168.1.50/capture"

	return &CameraURLStep{input: ti}
}

func (s *CameraURLStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *CameraURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		state.EnvVars["ESP32_URL"] = s.input.Value()
		return nil, nil
	}
	return s, cmd
}

func (s *CameraURLStep) View(state *InstallState) string {
	return "Enter your ESP32 camera snapshot URL:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}
