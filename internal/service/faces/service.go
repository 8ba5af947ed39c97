package faces

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/sandevgo/lifeos/internal/core"
	"github.com/sandevgo/lifeos/pkg/log"
)

// Service owns the known-face registry: reference images on disk under
// <public>/faces plus one KnownFace row each.
type Service struct {
	repo      core.FaceRepository
	comparer  core.FaceComparer
	publicDir string
	now       func() time.Time
}

func NewService(repo core.FaceRepository, comparer core.FaceComparer, publicDir string) (*Service, error) {
	if err := os.MkdirAll(filepath.Join(publicDir, "faces"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create faces directory: %w", err)
	}
	return &Service{
		repo:      repo,
		comparer:  comparer,
		publicDir: publicDir,
		now:       time.Now,
	}, nil
}

// Enroll stores the captured image as the reference for name. Storage
// failure is an expected condition and returns nil instead of an error; the
// caller replies apologetically and the interaction goes on.
func (s *Service) Enroll(ctx context.Context, image []byte, name string) *core.KnownFace {
	logger := log.FromCtx(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		name = "unknown"
	}

	relPath := filepath.ToSlash(filepath.Join("faces", fmt.Sprintf("%s-%d.jpg", slug(name), s.now().UnixMilli())))
	fullPath := filepath.Join(s.publicDir, filepath.FromSlash(relPath))

	if err := os.WriteFile(fullPath, image, 0644); err != nil {
		logger.Error().Err(err).Str("path", fullPath).Msg("failed to store face image")
		return nil
	}

	face := &core.KnownFace{
		Name:      name,
		ImagePath: relPath,
		CreatedAt: s.now(),
	}
	if err := s.repo.Add(ctx, face); err != nil {
		logger.Error().Err(err).Str("name", name).Msg("failed to store known face")
		return nil
	}

	logger.Info().Str("name", name).Str("path", relPath).Msg("new face enrolled")
	return face
}

// Recognize scans every enrolled face and returns the first matching name,
// or "" when nobody matches or the registry is empty. One comparer call per
// enrolled face; fine for a small personal registry.
func (s *Service) Recognize(ctx context.Context, probe []byte) (string, error) {
	logger := log.FromCtx(ctx)

	all, err := s.repo.All(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load known faces: %w", err)
	}
	if len(all) == 0 {
		return "", nil
	}

	for _, face := range all {
		reference, err := os.ReadFile(filepath.Join(s.publicDir, filepath.FromSlash(face.ImagePath)))
		if err != nil {
			logger.Warn().Err(err).Str("name", face.Name).Msg("reference image unreadable, skipping")
			continue
		}

		match, err := s.comparer.Compare(ctx, probe, reference)
		if err != nil {
			return "", fmt.Errorf("face comparison for %q: %w", face.Name, err)
		}
		if match {
			return face.Name, nil
		}
	}
	return "", nil
}

func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}
