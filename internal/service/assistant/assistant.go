package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/sandevgo/lifeos/internal/core"
	"github.com/sandevgo/lifeos/internal/service/conversation"
	"github.com/sandevgo/lifeos/pkg/log"
)

const (
	replyAskNote       = "Okay, what's the note?"
	replyNoteSaved     = "Got it. Saved to your notes."
	replyEnrollFailed  = "Sorry, I had trouble remembering this person. Please try again."
	replyNotRecognized = "Sorry, I don't recognize this person."
	replyApology       = "Sorry, something went wrong. Please try again."

	replyRemembered = "Okay, I'll remember this person as %s."
	replyRecognized = "This is %s."
)

const (
	metaKeyIntent   = "intent"
	metaKeyPayload  = "payload"
	metaKeyAction   = "action"
	metaKeyContent  = "content"
	metaKeyPerson   = "person"
	metaKeyAnalysis = "analysis"
	metaKeyImage    = "image"
)

type FaceService interface {
	Enroll(ctx context.Context, image []byte, name string) *core.KnownFace
	Recognize(ctx context.Context, probe []byte) (string, error)
}

type IntentResolver interface {
	Resolve(ctx context.Context, text string) core.Intent
}

type ConversationState interface {
	Get(sessionID string) conversation.State
	SetAwaitingNote(sessionID string)
	Clear(sessionID string)
}

// Deps wires the orchestrator to its collaborators. Every adapter is called
// at most once per interaction; there are no retries anywhere in this
// pipeline.
type Deps struct {
	Transcriber core.Transcriber
	Synthesizer core.SpeechSynthesizer
	TextGen     core.TextGenerator
	Vision      core.VisionAnalyzer
	Camera      core.Camera
	Faces       FaceService
	Intents     IntentResolver
	State       ConversationState
	Logs        core.InputLogRepository
	Notes       core.NoteRepository
	Broadcaster core.Broadcaster

	// VisionChatReply additionally runs the text generator on general_vision
	// turns for a secondary chat reply.
	VisionChatReply bool
}

// Assistant drives one full audio-in to response-out interaction:
// transcription, conversation-state branch, intent dispatch, logging,
// speech synthesis and broadcast.
type Assistant struct {
	deps Deps
	now  func() time.Time
}

func New(deps Deps) *Assistant {
	return &Assistant{
		deps: deps,
		now:  time.Now,
	}
}

// Process handles one uploaded audio clip for the given session. On failure
// the returned result still carries a speakable apology (the assistant never
// goes silent) next to the error.
func (a *Assistant) Process(ctx context.Context, sessionID string, audio []byte, mimeType string) (*core.InteractionResult, error) {
	if len(audio) == 0 {
		return nil, core.ErrBadInput
	}

	logger := log.FromCtx(ctx)

	res, err := a.run(ctx, sessionID, audio, mimeType)
	if err != nil {
		logger.Error().Err(err).Str("session", sessionID).Msg("interaction failed")

		// Never leave a session stuck awaiting note content after a crash.
		a.deps.State.Clear(sessionID)

		fallback := &core.InteractionResult{FinalResponseText: replyApology}
		if path, synthErr := a.deps.Synthesizer.Synthesize(ctx, replyApology); synthErr != nil {
			logger.Warn().Err(synthErr).Msg("apology synthesis failed")
		} else {
			fallback.AudioFilePath = path
		}
		return fallback, err
	}

	a.deps.Broadcaster.Broadcast(core.ResponseEvent{
		Transcription:     res.Transcription,
		TextReply:         res.TextReply,
		FinalResponseText: res.FinalResponseText,
		AudioFilePath:     res.AudioFilePath,
		VisionRequired:    res.VisionRequired,
		VisionResult:      res.VisionResult,
	})
	return res, nil
}

func (a *Assistant) run(ctx context.Context, sessionID string, audio []byte, mimeType string) (*core.InteractionResult, error) {
	logger := log.FromCtx(ctx)

	transcription, err := a.deps.Transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("session", sessionID).Str("text", transcription).Msg("transcribed")

	res := &core.InteractionResult{Transcription: transcription}
	meta := core.Metadata{}
	logType := core.LogTypeVoice
	var frame []byte

	if a.deps.State.Get(sessionID) == conversation.StateAwaitingNote {
		// Pending dictation consumes this utterance; intent resolution is
		// skipped entirely.
		if err := a.saveNote(ctx, sessionID, transcription, res, meta); err != nil {
			return nil, err
		}
		logType = core.LogTypeCommand
	} else {
		it := a.deps.Intents.Resolve(ctx, transcription)

		// Recorded before dispatch so a failing action still leaves a trace
		// of what was attempted.
		meta[metaKeyIntent] = string(it.Kind)
		if it.Payload != nil {
			meta[metaKeyPayload] = it.Payload
		}

		logType, frame, err = a.dispatch(ctx, sessionID, it, transcription, res, meta)
		if err != nil {
			return nil, err
		}
	}

	if len(frame) > 0 {
		meta[metaKeyImage] = a.encodeFrame(ctx, frame)
	}

	if err := a.deps.Logs.Add(ctx, &core.InputLog{
		Text:      transcription,
		Source:    core.SourcePCMic,
		Type:      logType,
		Metadata:  meta,
		CreatedAt: a.now(),
	}); err != nil {
		return nil, err
	}

	if path, err := a.deps.Synthesizer.Synthesize(ctx, res.FinalResponseText); err != nil {
		// Text results stand on their own; the response just lacks audio.
		logger.Warn().Err(err).Msg("speech synthesis failed, returning text-only result")
	} else {
		res.AudioFilePath = path
	}

	return res, nil
}

func (a *Assistant) saveNote(ctx context.Context, sessionID, transcription string, res *core.InteractionResult, meta core.Metadata) error {
	content := strings.TrimSpace(transcription)

	if err := a.deps.Notes.Add(ctx, &core.Note{
		Content:   content,
		Source:    core.NoteSourceVoice,
		CreatedAt: a.now(),
	}); err != nil {
		return err
	}

	a.deps.State.Clear(sessionID)

	res.FinalResponseText = replyNoteSaved
	meta[metaKeyAction] = "create_note"
	meta[metaKeyContent] = content

	log.FromCtx(ctx).Info().Str("session", sessionID).Msg("note saved")
	return nil
}
