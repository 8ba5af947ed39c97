package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/lifeos/pkg/log"
)

type OpenAIConfig struct {
	APIKey       string `env:"OPENAI_API_KEY,required,notEmpty"`
	BaseURL      string `env:"OPENAI_BASE_URL"`
	WhisperModel string `env:"OPENAI_WHISPER_MODEL" envDefault:"whisper-1"`
	TTSModel     string `env:"OPENAI_TTS_MODEL" envDefault:"tts-1"`
	TTSVoice     string `env:"OPENAI_TTS_VOICE" envDefault:"alloy"`
}

func NewOpenAIConfig(ctx context.Context) *OpenAIConfig {
	c := &OpenAIConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse OpenAI config")
	}
	return c
}
