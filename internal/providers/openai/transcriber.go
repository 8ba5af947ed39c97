package openai

import (
	"bytes"
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/sandevgo/lifeos/internal/config"
	"github.com/sandevgo/lifeos/internal/core"
)

// Transcriber wraps the Whisper transcription endpoint.
type Transcriber struct {
	client *openai.Client
	model  string
}

func NewTranscriber(cfg *config.OpenAIConfig) *Transcriber {
	return &Transcriber{
		client: newClient(cfg),
		model:  cfg.WhisperModel,
	}
}

func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		Reader:   bytes.NewReader(audio),
		FilePath: fileNameForMime(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s", core.ErrTranscriptionFailed, err)
	}
	return resp.Text, nil
}
