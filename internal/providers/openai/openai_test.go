package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/lifeos/internal/config"
	"github.com/sandevgo/lifeos/internal/core"
)

func testConfig(baseURL string) *config.OpenAIConfig {
	return &config.OpenAIConfig{
		APIKey:       "test-key",
		BaseURL:      baseURL,
		WhisperModel: "whisper-1",
		TTSModel:     "tts-1",
		TTSVoice:     "alloy",
	}
}

func TestTranscriber_Transcribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/audio/transcriptions", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1 << 20))

		assert.Equal(t, "whisper-1", r.FormValue("model"))

		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "audio.webm", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "remember this person as Alice"}`))
	}))
	defer srv.Close()

	tr := NewTranscriber(testConfig(srv.URL))

	text, err := tr.Transcribe(context.Background(), []byte("opus-bytes"), "audio/webm")

	require.NoError(t, err)
	assert.Equal(t, "remember this person as Alice", text)
}

func TestTranscriber_TranscribeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "bad audio"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	tr := NewTranscriber(testConfig(srv.URL))

	_, err := tr.Transcribe(context.Background(), []byte("garbage"), "audio/webm")

	assert.ErrorIs(t, err, core.ErrTranscriptionFailed)
}

func TestFileNameForMime(t *testing.T) {
	assert.Equal(t, "audio.wav", fileNameForMime("audio/wav"))
	assert.Equal(t, "audio.mp3", fileNameForMime("audio/mpeg"))
	assert.Equal(t, "audio.webm", fileNameForMime(""))
	assert.Equal(t, "audio.webm", fileNameForMime("application/octet-stream"))
}

func TestSynthesizer_Synthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/audio/speech", r.URL.Path)
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	publicDir := t.TempDir()
	s, err := NewSynthesizer(testConfig(srv.URL), publicDir)
	require.NoError(t, err)

	relPath, err := s.Synthesize(context.Background(), "Okay, what's the note?")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relPath, "audio/reply_"))
	assert.True(t, strings.HasSuffix(relPath, ".mp3"))

	data, err := os.ReadFile(filepath.Join(publicDir, filepath.FromSlash(relPath)))
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), data)
}

func TestSynthesizer_SynthesizeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s, err := NewSynthesizer(testConfig(srv.URL), t.TempDir())
	require.NoError(t, err)

	_, err = s.Synthesize(context.Background(), "hello")

	assert.ErrorIs(t, err, core.ErrSynthesisFailed)
}
