package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sandevgo/lifeos/internal/core"
)

type stubGenerator struct {
	out string
	err error
}

func (s *stubGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	return s.out, s.err
}

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name        string
		out         string
		err         error
		wantKind    core.IntentKind
		wantPayload map[string]any
	}{
		{
			name:     "clean json",
			out:      `{"intent": "start_note", "payload": null}`,
			wantKind: core.IntentStartNote,
		},
		{
			name:     "json wrapped in markdown fences",
			out:      "```json\n{\"intent\": \"general_vision\"}\n```",
			wantKind: core.IntentGeneralVision,
		},
		{
			name:     "json embedded in prose",
			out:      `Sure! Here is the classification: {"intent": "recognize_face"} Hope that helps.`,
			wantKind: core.IntentRecognizeFace,
		},
		{
			name:        "remember_face with name",
			out:         `{"intent": "remember_face", "payload": {"name": "Alice"}}`,
			wantKind:    core.IntentRememberFace,
			wantPayload: map[string]any{"name": "Alice"},
		},
		{
			name:        "remember_face without name defaults to unknown",
			out:         `{"intent": "remember_face", "payload": {}}`,
			wantKind:    core.IntentRememberFace,
			wantPayload: map[string]any{"name": "unknown"},
		},
		{
			name:        "remember_face with blank name defaults to unknown",
			out:         `{"intent": "remember_face", "payload": {"name": "   "}}`,
			wantKind:    core.IntentRememberFace,
			wantPayload: map[string]any{"name": "unknown"},
		},
		{
			name:     "uppercase intent is normalized",
			out:      `{"intent": "START_NOTE"}`,
			wantKind: core.IntentStartNote,
		},
		{
			name:     "unrecognized intent kind passes through for default dispatch",
			out:      `{"intent": "play_music"}`,
			wantKind: core.IntentKind("play_music"),
		},
		{
			name:     "malformed json falls back",
			out:      `{"intent": "start_note"`,
			wantKind: core.IntentGeneralText,
		},
		{
			name:     "no json object falls back",
			out:      "I could not classify that.",
			wantKind: core.IntentGeneralText,
		},
		{
			name:     "missing intent field falls back",
			out:      `{"payload": {"name": "Alice"}}`,
			wantKind: core.IntentGeneralText,
		},
		{
			name:     "adapter error falls back",
			err:      errors.New("upstream down"),
			wantKind: core.IntentGeneralText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(&stubGenerator{out: tt.out, err: tt.err})

			it := r.Resolve(context.Background(), "whatever was said")

			assert.Equal(t, tt.wantKind, it.Kind)
			if tt.wantPayload != nil {
				assert.Equal(t, tt.wantPayload, it.Payload)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{
			name: "bare object",
			in:   `{"a":1}`,
			want: `{"a":1}`,
			ok:   true,
		},
		{
			name: "nested objects",
			in:   `x {"a":{"b":2}} y {"c":3}`,
			want: `{"a":{"b":2}}`,
			ok:   true,
		},
		{
			name: "braces inside strings",
			in:   `{"a":"closing } brace","b":"\"{"}`,
			want: `{"a":"closing } brace","b":"\"{"}`,
			ok:   true,
		},
		{
			name: "unterminated object",
			in:   `{"a":1`,
			ok:   false,
		},
		{
			name: "no object at all",
			in:   `plain text`,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
