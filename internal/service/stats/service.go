package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/lifeos/internal/core"
	"github.com/sandevgo/lifeos/pkg/log"
)

const recentActivityLimit = 5

// DayCounts are the per-day dashboard counters.
type DayCounts struct {
	VoiceInteractions int `json:"voiceInteractions"`
	ImagesCaptured    int `json:"imagesCaptured"`
	FacesRecognized   int `json:"facesRecognized"`
	NotesCreated      int `json:"notesCreated"`
}

// DayStats is one day's dashboard slice plus the most recent activity
// regardless of date.
type DayStats struct {
	Date           string          `json:"date"`
	Counts         DayCounts       `json:"counts"`
	RecentActivity []core.InputLog `json:"recentActivity"`
}

// Totals are the all-time counters shown on the settings screen.
type Totals struct {
	Images int `json:"images"`
	Voice  int `json:"voice"`
	Faces  int `json:"faces"`
	Notes  int `json:"notes"`
}

// Service answers dashboard queries over the three stores and owns the
// factory reset.
type Service struct {
	logs  core.InputLogRepository
	faces core.FaceRepository
	notes core.NoteRepository
	now   func() time.Time
}

func NewService(logs core.InputLogRepository, faces core.FaceRepository, notes core.NoteRepository) *Service {
	return &Service{
		logs:  logs,
		faces: faces,
		notes: notes,
		now:   time.Now,
	}
}

// Dashboard returns counters for the given YYYY-MM-DD date in local time.
// An empty date means today.
func (s *Service) Dashboard(ctx context.Context, date string) (*DayStats, error) {
	day := s.now()
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", core.ErrBadInput, date)
		}
		day = parsed
	}

	from, to := dayBounds(day)

	voice, err := s.logs.CountByTypeBetween(ctx, core.LogTypeVoice, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count voice logs: %w", err)
	}

	images, err := s.logs.CountByTypeBetween(ctx, core.LogTypeImage, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count image logs: %w", err)
	}

	facesLearned, err := s.faces.CountBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count faces: %w", err)
	}

	notesCreated, err := s.notes.CountBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count notes: %w", err)
	}

	recent, err := s.logs.Recent(ctx, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}
	if recent == nil {
		recent = []core.InputLog{}
	}

	return &DayStats{
		Date: from.Format("2006-01-02"),
		Counts: DayCounts{
			VoiceInteractions: voice,
			ImagesCaptured:    images,
			FacesRecognized:   facesLearned,
			NotesCreated:      notesCreated,
		},
		RecentActivity: recent,
	}, nil
}

// AllTime returns total record counts across every store.
func (s *Service) AllTime(ctx context.Context) (*Totals, error) {
	images, err := s.logs.CountByType(ctx, core.LogTypeImage)
	if err != nil {
		return nil, fmt.Errorf("failed to count image logs: %w", err)
	}
	voice, err := s.logs.CountByType(ctx, core.LogTypeVoice)
	if err != nil {
		return nil, fmt.Errorf("failed to count voice logs: %w", err)
	}
	faces, err := s.faces.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count faces: %w", err)
	}
	notes, err := s.notes.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count notes: %w", err)
	}
	return &Totals{Images: images, Voice: voice, Faces: faces, Notes: notes}, nil
}

// Reset wipes all three stores. Face reference images stay on disk; only the
// registry rows are dropped.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.logs.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to reset logs: %w", err)
	}
	if err := s.faces.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to reset faces: %w", err)
	}
	if err := s.notes.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to reset notes: %w", err)
	}

	log.FromCtx(ctx).Info().Msg("all stores reset")
	return nil
}

// dayBounds is the inclusive local-time window covering one calendar day.
func dayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.In(time.Local).Date()
	from := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	to := from.Add(24*time.Hour - time.Nanosecond)
	return from, to
}
