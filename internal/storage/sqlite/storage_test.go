package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/lifeos/internal/core"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "lifeos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestInputLogsRepo_AddAndRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewInputLogsRepo(newTestDB(t))

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	for i, text := range []string{"first", "second", "third"} {
		err := repo.Add(ctx, &core.InputLog{
			Text:      text,
			Source:    core.SourcePCMic,
			Type:      core.LogTypeVoice,
			Metadata:  core.Metadata{"intent": "general_text"},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Text)
	assert.Equal(t, "second", recent[1].Text)
	assert.Equal(t, "general_text", recent[0].Metadata["intent"])
	assert.Equal(t, core.SourcePCMic, recent[0].Source)
}

func TestInputLogsRepo_CountByTypeBetween(t *testing.T) {
	ctx := context.Background()
	repo := NewInputLogsRepo(newTestDB(t))

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	dayEnd := day.Add(24*time.Hour - time.Nanosecond)

	add := func(logType core.LogType, at time.Time) {
		require.NoError(t, repo.Add(ctx, &core.InputLog{
			Text:      "x",
			Source:    core.SourcePCMic,
			Type:      logType,
			CreatedAt: at,
		}))
	}

	add(core.LogTypeVoice, day)                      // inclusive lower bound
	add(core.LogTypeVoice, dayEnd)                   // last instant of the day
	add(core.LogTypeVoice, day.Add(24*time.Hour))    // next day, excluded
	add(core.LogTypeImage, day.Add(6*time.Hour))     // other type
	add(core.LogTypeVoice, day.Add(-time.Nanosecond)) // previous day, excluded

	count, err := repo.CountByTypeBetween(ctx, core.LogTypeVoice, day, dayEnd)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	images, err := repo.CountByTypeBetween(ctx, core.LogTypeImage, day, dayEnd)
	require.NoError(t, err)
	assert.Equal(t, 1, images)
}

func TestFacesRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewFacesRepo(newTestDB(t))

	now := time.Now()
	face := &core.KnownFace{Name: "Alice", ImagePath: "faces/alice-1.jpg", CreatedAt: now}
	require.NoError(t, repo.Add(ctx, face))
	assert.NotZero(t, face.ID)

	require.NoError(t, repo.Add(ctx, &core.KnownFace{Name: "Bob", ImagePath: "faces/bob-1.jpg", CreatedAt: now}))

	faces, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, faces, 2)
	assert.Equal(t, "Alice", faces[0].Name)
	assert.Equal(t, "faces/alice-1.jpg", faces[0].ImagePath)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, repo.DeleteAll(ctx))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotesRepo_DefaultSource(t *testing.T) {
	ctx := context.Background()
	repo := NewNotesRepo(newTestDB(t))

	note := &core.Note{Content: "Buy milk", CreatedAt: time.Now()}
	require.NoError(t, repo.Add(ctx, note))
	assert.Equal(t, core.NoteSourceVoice, note.Source)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReset_LeavesAllStoresEmpty(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	logs := NewInputLogsRepo(db)
	faces := NewFacesRepo(db)
	notes := NewNotesRepo(db)

	now := time.Now()
	require.NoError(t, logs.Add(ctx, &core.InputLog{Text: "t", Source: core.SourcePCMic, Type: core.LogTypeVoice, CreatedAt: now}))
	require.NoError(t, faces.Add(ctx, &core.KnownFace{Name: "Alice", ImagePath: "p", CreatedAt: now}))
	require.NoError(t, notes.Add(ctx, &core.Note{Content: "n", CreatedAt: now}))

	require.NoError(t, logs.DeleteAll(ctx))
	require.NoError(t, faces.DeleteAll(ctx))
	require.NoError(t, notes.DeleteAll(ctx))

	voice, err := logs.CountByType(ctx, core.LogTypeVoice)
	require.NoError(t, err)
	faceCount, err := faces.Count(ctx)
	require.NoError(t, err)
	noteCount, err := notes.Count(ctx)
	require.NoError(t, err)

	assert.Zero(t, voice)
	assert.Zero(t, faceCount)
	assert.Zero(t, noteCount)
}
