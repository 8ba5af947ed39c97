package openai

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/sandevgo/lifeos/internal/config"
	"github.com/sandevgo/lifeos/internal/core"
)

// Synthesizer renders reply text to an mp3 under <public>/audio and returns
// the path relative to the public directory.
type Synthesizer struct {
	client    *openai.Client
	model     string
	voice     string
	publicDir string
}

func NewSynthesizer(cfg *config.OpenAIConfig, publicDir string) (*Synthesizer, error) {
	if err := os.MkdirAll(filepath.Join(publicDir, "audio"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}
	return &Synthesizer{
		client:    newClient(cfg),
		model:     cfg.TTSModel,
		voice:     cfg.TTSVoice,
		publicDir: publicDir,
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.SpeechModel(s.model),
		Input: text,
		Voice: openai.SpeechVoice(s.voice),
		// MP3 plays everywhere, including mobile browsers.
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s", core.ErrSynthesisFailed, err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return "", fmt.Errorf("%w: %s", core.ErrSynthesisFailed, err)
	}

	relPath := filepath.ToSlash(filepath.Join("audio", fmt.Sprintf("reply_%s.mp3", uuid.NewString())))
	if err := os.WriteFile(filepath.Join(s.publicDir, filepath.FromSlash(relPath)), data, 0644); err != nil {
		return "", fmt.Errorf("%w: %s", core.ErrSynthesisFailed, err)
	}
	return relPath, nil
}
