package core

import "errors"

// Adapter and pipeline failure classes. Providers translate transport-level
// errors into one of these at the boundary; the orchestrator decides whether
// to recover locally or escalate.
var (
	ErrBadInput            = errors.New("bad input")
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrCaptureFailed       = errors.New("image capture failed")
	ErrSynthesisFailed     = errors.New("speech synthesis failed")
)
