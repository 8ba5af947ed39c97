package core

import "context"

// Transcriber converts an uploaded audio clip into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// SpeechSynthesizer renders reply text into a playable audio file and
// returns its path relative to the public directory.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// TextGenerator answers a free-form text prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// VisionAnalyzer answers a question about a captured image.
type VisionAnalyzer interface {
	Analyze(ctx context.Context, image []byte, userText string) (string, error)
}

// FaceComparer reports whether two images show the same person.
type FaceComparer interface {
	Compare(ctx context.Context, probe, reference []byte) (bool, error)
}

// Camera captures a single frame from the glasses camera device.
type Camera interface {
	Capture(ctx context.Context) ([]byte, error)
}

// Broadcaster pushes a finalized interaction to connected clients.
// Fire-and-forget: delivery failures must never reach the pipeline.
type Broadcaster interface {
	Broadcast(event ResponseEvent)
}
