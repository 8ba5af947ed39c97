package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/lifeos/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"LIFEOS_RUNTIME_PATH" envDefault:".lifeos"`
	ListenAddr  string `env:"LIFEOS_LISTEN_ADDR" envDefault:":3000"`

	// PublicBaseURL is used to build absolute audio URLs in HTTP responses.
	PublicBaseURL string `env:"LIFEOS_PUBLIC_BASE_URL" envDefault:"http://localhost:3000"`

	// Transport flags
	EnableTelegram bool `env:"LIFEOS_ENABLE_TELEGRAM" envDefault:"false"`

	// VisionChatReply also runs the text generator for general_vision turns,
	// producing a secondary chat reply next to the vision answer.
	VisionChatReply bool `env:"LIFEOS_VISION_CHAT_REPLY" envDefault:"false"`

	// NoteSessionTTLSeconds is how long a pending note dictation survives
	// before it is silently abandoned.
	NoteSessionTTLSeconds int `env:"LIFEOS_NOTE_SESSION_TTL" envDefault:"120"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "lifeos.db")
}

// GetPublicPath is the root of statically served files (synthesized audio
// under audio/, face reference images under faces/).
func (c AppConfig) GetPublicPath() string {
	return filepath.Join(c.RuntimePath, "public")
}

func (c AppConfig) GetAudioPath() string {
	return filepath.Join(c.GetPublicPath(), "audio")
}

func (c AppConfig) GetFacesPath() string {
	return filepath.Join(c.GetPublicPath(), "faces")
}
