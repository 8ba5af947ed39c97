package faces

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/lifeos/internal/core"
)

type memFaceRepo struct {
	faces  []core.KnownFace
	addErr error
}

func (m *memFaceRepo) Add(ctx context.Context, face *core.KnownFace) error {
	if m.addErr != nil {
		return m.addErr
	}
	face.ID = int64(len(m.faces) + 1)
	m.faces = append(m.faces, *face)
	return nil
}

func (m *memFaceRepo) All(ctx context.Context) ([]core.KnownFace, error) { return m.faces, nil }
func (m *memFaceRepo) Count(ctx context.Context) (int, error)            { return len(m.faces), nil }
func (m *memFaceRepo) CountBetween(ctx context.Context, from, to time.Time) (int, error) {
	return len(m.faces), nil
}
func (m *memFaceRepo) DeleteAll(ctx context.Context) error {
	m.faces = nil
	return nil
}

// equalComparer matches when both images hold identical bytes.
type equalComparer struct {
	calls int
	err   error
}

func (c *equalComparer) Compare(ctx context.Context, probe, reference []byte) (bool, error) {
	c.calls++
	if c.err != nil {
		return false, c.err
	}
	return bytes.Equal(probe, reference), nil
}

func newTestService(t *testing.T, repo core.FaceRepository, comparer core.FaceComparer) *Service {
	t.Helper()
	svc, err := NewService(repo, comparer, t.TempDir())
	require.NoError(t, err)
	return svc
}

func TestService_Enroll(t *testing.T) {
	ctx := context.Background()
	repo := &memFaceRepo{}
	svc := newTestService(t, repo, &equalComparer{})

	face := svc.Enroll(ctx, []byte("jpeg-bytes"), "Alice")

	require.NotNil(t, face)
	assert.Equal(t, "Alice", face.Name)
	assert.Contains(t, face.ImagePath, "faces/alice-")

	stored, err := os.ReadFile(filepath.Join(svc.publicDir, filepath.FromSlash(face.ImagePath)))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), stored)
	require.Len(t, repo.faces, 1)
}

func TestService_EnrollStorageFailureReturnsNil(t *testing.T) {
	ctx := context.Background()
	repo := &memFaceRepo{addErr: errors.New("db is gone")}
	svc := newTestService(t, repo, &equalComparer{})

	face := svc.Enroll(ctx, []byte("jpeg-bytes"), "Alice")

	assert.Nil(t, face)
}

func TestService_RecognizeEmptyRegistrySkipsComparer(t *testing.T) {
	ctx := context.Background()
	comparer := &equalComparer{}
	svc := newTestService(t, &memFaceRepo{}, comparer)

	name, err := svc.Recognize(ctx, []byte("probe"))

	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Zero(t, comparer.calls, "no comparer calls against an empty registry")
}

func TestService_EnrollThenRecognizeRoundTrip(t *testing.T) {
	ctx := context.Background()
	comparer := &equalComparer{}
	svc := newTestService(t, &memFaceRepo{}, comparer)

	probe := []byte("same-face")
	require.NotNil(t, svc.Enroll(ctx, []byte("other-face"), "Bob"))
	require.NotNil(t, svc.Enroll(ctx, probe, "Alice"))

	name, err := svc.Recognize(ctx, probe)

	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
	assert.Equal(t, 2, comparer.calls, "linear scan, first match wins")
}

func TestService_RecognizeNoMatch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &memFaceRepo{}, &equalComparer{})

	require.NotNil(t, svc.Enroll(ctx, []byte("bob"), "Bob"))

	name, err := svc.Recognize(ctx, []byte("stranger"))

	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestService_RecognizeComparerErrorPropagates(t *testing.T) {
	ctx := context.Background()
	comparer := &equalComparer{err: errors.New("vision service down")}
	svc := newTestService(t, &memFaceRepo{}, comparer)

	require.NotNil(t, svc.Enroll(ctx, []byte("bob"), "Bob"))

	_, err := svc.Recognize(ctx, []byte("probe"))

	assert.Error(t, err)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "alice", slug("Alice"))
	assert.Equal(t, "mary-jane", slug("Mary Jane"))
	assert.Equal(t, "unknown", slug("!!!"))
}
