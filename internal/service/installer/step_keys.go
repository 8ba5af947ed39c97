package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newSecretInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = placeholder
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return ti
}

// OpenAIKeyStep collects the key used for Whisper transcription and TTS
type OpenAIKeyStep struct {
	input textinput.Model
}

func NewOpenAIKeyStep() Step {
	return &OpenAIKeyStep{input: newSecretInput("sk-...")}
}

func (s *OpenAIKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *OpenAIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		state.EnvVars["OPENAI_API_KEY"] = s.input.Value()
		return nil, nil
	}
	return s, cmd
}

func (s *OpenAIKeyStep) View(state *InstallState) string {
	return "Enter your OpenAI API Key (speech-to-text and voice replies):\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

// GeminiKeyStep collects the key used for chat, vision and face comparison
type GeminiKeyStep struct {
	input textinput.Model
}

func NewGeminiKeyStep() Step {
	return &GeminiKeyStep{input: newSecretInput("AIza...")}
}

func (s *GeminiKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *GeminiKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		state.EnvVars["GEMINI_API_KEY"] = s.input.Value()
		return nil, nil
	}
	return s, cmd
}

func (s *GeminiKeyStep) View(state *InstallState) string {
	return "Enter your Gemini API Key (assistant brain and vision):\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}
