package core

import "time"

const (
	AppName    = "LifeOS"
	AppVersion = "0.1.0"
)

// Source is where an input originated.
type Source string

const (
	SourcePCMic         Source = "pc-mic"
	SourceGlassesCamera Source = "glasses-camera"
	SourceGlassesMic    Source = "glasses-mic"
	SourceSystem        Source = "system"
)

// LogType reflects which action path produced an input log.
type LogType string

const (
	LogTypeVoice   LogType = "voice"
	LogTypeImage   LogType = "image"
	LogTypeCommand LogType = "command"
	LogTypeSystem  LogType = "system"
)

// Metadata is the open attribute map attached to an input log. Action
// handlers attach heterogeneous facts, so it is schema-less on purpose.
type Metadata map[string]any

// InputLog is one record per processed audio input. Created once at the end
// of action handling; never updated, bulk-deleted only via reset.
type InputLog struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Source    Source    `json:"source"`
	Type      LogType   `json:"type"`
	Metadata  Metadata  `json:"metadata"`
	CreatedAt time.Time `json:"createdAt"`
}

// KnownFace associates a display name with a stored reference image.
type KnownFace struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ImagePath string    `json:"imagePath"`
	CreatedAt time.Time `json:"createdAt"`
}

// NoteSourceVoice is the default origin tag for dictated notes.
const NoteSourceVoice = "voice-logger"

// Note is a free-text note captured through the note dictation flow.
type Note struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

// IntentKind is the classified purpose of a transcribed utterance.
type IntentKind string

const (
	IntentStartNote     IntentKind = "start_note"
	IntentRememberFace  IntentKind = "remember_face"
	IntentRecognizeFace IntentKind = "recognize_face"
	IntentGeneralVision IntentKind = "general_vision"
	IntentGeneralText   IntentKind = "general_text"
)

// Intent is the ephemeral value produced by the resolver. Payload is
// kind-specific (currently only remember_face carries one) and nil otherwise.
type Intent struct {
	Kind    IntentKind     `json:"intent"`
	Payload map[string]any `json:"payload"`
}

// InteractionResult carries the outcome of one processed audio upload.
type InteractionResult struct {
	Transcription     string `json:"transcription"`
	VisionRequired    bool   `json:"visionRequired"`
	VisionResult      string `json:"visionResult,omitempty"`
	TextReply         string `json:"textReply,omitempty"`
	FinalResponseText string `json:"finalResponseText"`
	AudioFilePath     string `json:"audioFilePath,omitempty"`
}

// ResponseEvent is pushed to every connected client after a completed
// interaction, independent of the HTTP response to the requester.
type ResponseEvent struct {
	Transcription     string `json:"transcription"`
	TextReply         string `json:"textReply"`
	FinalResponseText string `json:"finalResponseText"`
	AudioFilePath     string `json:"audioFilePath"`
	VisionRequired    bool   `json:"visionRequired"`
	VisionResult      string `json:"visionResult"`
}
