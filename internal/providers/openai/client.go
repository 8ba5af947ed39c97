package openai

import (
	openai "github.com/sashabaranov/go-openai"

	"github.com/sandevgo/lifeos/internal/config"
)

func newClient(cfg *config.OpenAIConfig) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(clientCfg)
}

// fileNameForMime gives Whisper a file name whose extension matches the
// uploaded clip; the API uses it to pick the decoder.
func fileNameForMime(mimeType string) string {
	switch mimeType {
	case "audio/wav", "audio/x-wav", "audio/wave":
		return "audio.wav"
	case "audio/mpeg", "audio/mp3":
		return "audio.mp3"
	case "audio/mp4", "audio/x-m4a":
		return "audio.m4a"
	case "audio/ogg", "application/ogg":
		return "audio.ogg"
	case "audio/flac":
		return "audio.flac"
	default:
		return "audio.webm"
	}
}
