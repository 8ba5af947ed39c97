package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/sandevgo/lifeos/internal/config"
	"github.com/sandevgo/lifeos/internal/core"
	"github.com/sandevgo/lifeos/internal/providers/esp32"
	"github.com/sandevgo/lifeos/internal/providers/gemini"
	"github.com/sandevgo/lifeos/internal/providers/openai"
	"github.com/sandevgo/lifeos/internal/service/assistant"
	"github.com/sandevgo/lifeos/internal/service/conversation"
	"github.com/sandevgo/lifeos/internal/service/faces"
	"github.com/sandevgo/lifeos/internal/service/intent"
	"github.com/sandevgo/lifeos/internal/service/stats"
	"github.com/sandevgo/lifeos/internal/storage/sqlite"
	lifeoshttp "github.com/sandevgo/lifeos/internal/transport/http"
	"github.com/sandevgo/lifeos/internal/transport/telegram"
	"github.com/sandevgo/lifeos/internal/transport/ws"
	"github.com/sandevgo/lifeos/pkg/log"
	"github.com/sandevgo/lifeos/pkg/srv"
)

// fanout forwards one interaction result to every configured broadcaster.
type fanout []core.Broadcaster

func (f fanout) Broadcast(event core.ResponseEvent) {
	for _, b := range f {
		b.Broadcast(event)
	}
}

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	logsRepo := sqlite.NewInputLogsRepo(db)
	facesRepo := sqlite.NewFacesRepo(db)
	notesRepo := sqlite.NewNotesRepo(db)

	// 3. AI Providers
	openaiCfg := config.NewOpenAIConfig(ctx)
	transcriber := openai.NewTranscriber(openaiCfg)

	synthesizer, err := openai.NewSynthesizer(openaiCfg, appCfg.GetPublicPath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize speech synthesizer")
	}

	gem, err := gemini.NewClient(ctx, config.NewGeminiConfig(ctx))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize gemini client")
	}
	services = append(services, srv.NewCleanup(gem.Close))

	camera := esp32.NewCamera(config.NewCameraConfig(ctx))

	// 4. Domain services
	sessions := conversation.NewManager(time.Duration(appCfg.NoteSessionTTLSeconds) * time.Second)
	resolver := intent.NewResolver(gem)

	faceSvc, err := faces.NewService(facesRepo, gem, appCfg.GetPublicPath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize face service")
	}

	statsSvc := stats.NewService(logsRepo, facesRepo, notesRepo)

	// 5. Broadcasters
	hub := ws.NewHub()
	services = append(services, srv.NewCleanup(func() error {
		return hub.Shutdown(context.Background())
	}))

	broadcasters := fanout{hub}
	if appCfg.EnableTelegram {
		notifier, err := telegram.NewNotifier(ctx, config.NewTelegramConfig(ctx))
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram notifier")
		}
		broadcasters = append(broadcasters, notifier)
	}

	// 6. Orchestrator
	ai := assistant.New(assistant.Deps{
		Transcriber:     transcriber,
		Synthesizer:     synthesizer,
		TextGen:         gem,
		Vision:          gem,
		Camera:          camera,
		Faces:           faceSvc,
		Intents:         resolver,
		State:           sessions,
		Logs:            logsRepo,
		Notes:           notesRepo,
		Broadcaster:     broadcasters,
		VisionChatReply: appCfg.VisionChatReply,
	})

	// 7. HTTP transport
	httpSrv := lifeoshttp.NewServer(ctx, lifeoshttp.Config{
		ListenAddr:    appCfg.ListenAddr,
		PublicBaseURL: appCfg.PublicBaseURL,
		AudioDir:      appCfg.GetAudioPath(),
		FacesDir:      appCfg.GetFacesPath(),
	}, ai, statsSvc, hub.Handler)
	services = append(services, httpSrv)

	return services
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
