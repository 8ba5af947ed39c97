package core

import (
	"context"
	"time"
)

type InputLogRepository interface {
	Add(ctx context.Context, entry *InputLog) error
	CountByTypeBetween(ctx context.Context, logType LogType, from, to time.Time) (int, error)
	CountByType(ctx context.Context, logType LogType) (int, error)
	Recent(ctx context.Context, limit int) ([]InputLog, error)
	DeleteAll(ctx context.Context) error
}

type FaceRepository interface {
	Add(ctx context.Context, face *KnownFace) error
	All(ctx context.Context) ([]KnownFace, error)
	Count(ctx context.Context) (int, error)
	CountBetween(ctx context.Context, from, to time.Time) (int, error)
	DeleteAll(ctx context.Context) error
}

type NoteRepository interface {
	Add(ctx context.Context, note *Note) error
	Count(ctx context.Context) (int, error)
	CountBetween(ctx context.Context, from, to time.Time) (int, error)
	DeleteAll(ctx context.Context) error
}
