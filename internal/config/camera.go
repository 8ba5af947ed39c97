package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/lifeos/pkg/log"
)

type CameraConfig struct {
	// SnapshotURL is the ESP32 camera capture endpoint.
	SnapshotURL    string `env:"ESP32_URL,required,notEmpty"`
	TimeoutSeconds int    `env:"ESP32_TIMEOUT" envDefault:"5"`
}

func NewCameraConfig(ctx context.Context) *CameraConfig {
	c := &CameraConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Camera config")
	}
	return c
}

func (c CameraConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
