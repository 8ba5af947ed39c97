package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/lifeos/internal/core"
	"github.com/sandevgo/lifeos/internal/service/stats"
)

type stubAssistant struct {
	res       *core.InteractionResult
	err       error
	sessionID string
	audio     []byte
	mimeType  string
}

func (s *stubAssistant) Process(ctx context.Context, sessionID string, audio []byte, mimeType string) (*core.InteractionResult, error) {
	s.sessionID = sessionID
	s.audio = audio
	s.mimeType = mimeType
	return s.res, s.err
}

type stubStats struct {
	day       *stats.DayStats
	dayErr    error
	totals    *stats.Totals
	resetErr  error
	wasReset  bool
	askedDate string
}

func (s *stubStats) Dashboard(ctx context.Context, date string) (*stats.DayStats, error) {
	s.askedDate = date
	return s.day, s.dayErr
}

func (s *stubStats) AllTime(ctx context.Context) (*stats.Totals, error) {
	return s.totals, nil
}

func (s *stubStats) Reset(ctx context.Context) error {
	s.wasReset = true
	return s.resetErr
}

func newTestServer(t *testing.T, assistant *stubAssistant, statsSvc *stubStats) *Server {
	t.Helper()

	tmp := t.TempDir()
	cfg := Config{
		ListenAddr:    ":0",
		PublicBaseURL: "http://glasses.local:3000/",
		AudioDir:      tmp,
		FacesDir:      tmp,
	}
	wsHandler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return NewServer(context.Background(), cfg, assistant, statsSvc, wsHandler)
}

func audioRequest(t *testing.T, body []byte, sessionID string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("audio", "command.webm")
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/audio/voice-command", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	if sessionID != "" {
		req.Header.Set(sessionHeader, sessionID)
	}
	return req
}

func TestVoiceCommand_Success(t *testing.T) {
	assistant := &stubAssistant{res: &core.InteractionResult{
		Transcription:     "hello",
		TextReply:         "Hi there.",
		FinalResponseText: "Hi there.",
		AudioFilePath:     "audio/reply_abc.mp3",
	}}
	srv := newTestServer(t, assistant, &stubStats{})

	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, audioRequest(t, []byte("opus-bytes"), "glasses"))

	require.Equal(t, http.StatusOK, rec.Code)

	var got voiceCommandResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "hello", got.Transcription)
	assert.Equal(t, "Hi there.", got.FinalResponseText)
	assert.Equal(t, "http://glasses.local:3000/audio/reply_abc.mp3", got.AudioURL)

	assert.Equal(t, "glasses", assistant.sessionID)
	assert.Equal(t, []byte("opus-bytes"), assistant.audio)
}

func TestVoiceCommand_DefaultSession(t *testing.T) {
	assistant := &stubAssistant{res: &core.InteractionResult{FinalResponseText: "ok"}}
	srv := newTestServer(t, assistant, &stubStats{})

	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, audioRequest(t, []byte("x"), ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "default", assistant.sessionID)
}

func TestVoiceCommand_MissingFile(t *testing.T) {
	srv := newTestServer(t, &stubAssistant{}, &stubStats{})

	req := httptest.NewRequest(http.MethodPost, "/api/audio/voice-command", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "audio file is required")
}

func TestVoiceCommand_BadInput(t *testing.T) {
	assistant := &stubAssistant{err: core.ErrBadInput}
	srv := newTestServer(t, assistant, &stubStats{})

	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, audioRequest(t, []byte("x"), ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVoiceCommand_PipelineFailureCarriesApology(t *testing.T) {
	assistant := &stubAssistant{
		res: &core.InteractionResult{
			FinalResponseText: "Sorry, something went wrong. Please try again.",
			AudioFilePath:     "audio/reply_apology.mp3",
		},
		err: errors.New("camera offline"),
	}
	srv := newTestServer(t, assistant, &stubStats{})

	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, audioRequest(t, []byte("x"), ""))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var got voiceCommandError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "camera offline", got.Error)
	assert.Equal(t, "Sorry, something went wrong. Please try again.", got.FinalResponseText)
	assert.Equal(t, "http://glasses.local:3000/audio/reply_apology.mp3", got.AudioURL)
}

func TestStats_Dashboard(t *testing.T) {
	statsSvc := &stubStats{day: &stats.DayStats{
		Date:           "2026-03-14",
		Counts:         stats.DayCounts{VoiceInteractions: 2},
		RecentActivity: []core.InputLog{},
	}}
	srv := newTestServer(t, &stubAssistant{}, statsSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/stats?date=2026-03-14", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-03-14", statsSvc.askedDate)
	assert.Contains(t, rec.Body.String(), `"voiceInteractions":2`)
}

func TestStats_InvalidDate(t *testing.T) {
	statsSvc := &stubStats{dayErr: core.ErrBadInput}
	srv := newTestServer(t, &stubAssistant{}, statsSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/stats?date=bogus", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettings_StatsAndReset(t *testing.T) {
	statsSvc := &stubStats{totals: &stats.Totals{Images: 4, Voice: 6, Faces: 2, Notes: 3}}
	srv := newTestServer(t, &stubAssistant{}, statsSvc)

	req := httptest.NewRequest(http.MethodGet, "/api/settings/stats", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"voice":6`)

	req = httptest.NewRequest(http.MethodDelete, "/api/settings/reset", nil)
	rec = httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, statsSvc.wasReset)
}
