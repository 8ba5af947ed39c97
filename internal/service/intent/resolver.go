package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandevgo/lifeos/internal/core"
	"github.com/sandevgo/lifeos/pkg/log"
)

const classifyPrompt = `You are the intent classifier for a smart-glasses voice assistant.
Your ONLY job is to convert the user's utterance into a minimal structured JSON.

GENERAL RULES:
1. Do NOT converse.
2. Do NOT answer the question.
3. Do NOT add explanations.
4. Output ONLY a single JSON object. No markdown.

OUTPUT FORMAT:
{"intent": "<string>", "payload": <object or null>}

INTENTS (canonical, snake_case):
- "start_note"      -> user wants to dictate a note ("take a note", "write this down")
- "remember_face"   -> user wants the assistant to remember the person in front of them; payload: {"name": "<name>"}
- "recognize_face"  -> user asks who the person in front of them is
- "general_vision"  -> answering requires seeing through the camera ("what is this?", "read this to me")
- "general_text"    -> anything else; open questions, chit-chat, requests without camera

PAYLOAD RULES:
- Only "remember_face" carries a payload; extract the person's name if spoken.
- All other intents: payload is null.
- Never invent names.

User message: %q`

// Transcripts longer than this are cut before classification; a handful of
// sentences is plenty to pick an intent.
const maxTranscriptTokens = 256

type generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Resolver turns a transcription into a discriminated intent. Classification
// is best-effort: every failure degrades to general_text so the interaction
// can still be answered as an open question.
type Resolver struct {
	gen generator
}

func NewResolver(gen generator) *Resolver {
	return &Resolver{gen: gen}
}

func (r *Resolver) Resolve(ctx context.Context, text string) core.Intent {
	logger := log.FromCtx(ctx)

	prompt := fmt.Sprintf(classifyPrompt, truncateTokens(text, maxTranscriptTokens))
	raw, err := r.gen.Complete(ctx, prompt)
	if err != nil {
		logger.Warn().Err(err).Msg("intent classification failed, falling back to general_text")
		return fallbackIntent()
	}

	obj, ok := extractJSONObject(raw)
	if !ok {
		logger.Warn().Str("raw", raw).Msg("no JSON object in classifier output, falling back to general_text")
		return fallbackIntent()
	}

	var parsed struct {
		Intent  string         `json:"intent"`
		Payload map[string]any `json:"payload"`
	}
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		logger.Warn().Err(err).Str("raw", obj).Msg("malformed classifier JSON, falling back to general_text")
		return fallbackIntent()
	}

	kind := core.IntentKind(strings.ToLower(strings.TrimSpace(parsed.Intent)))
	if kind == "" {
		logger.Warn().Str("raw", obj).Msg("classifier JSON has no intent field, falling back to general_text")
		return fallbackIntent()
	}

	it := core.Intent{Kind: kind, Payload: parsed.Payload}
	if kind == core.IntentRememberFace {
		it.Payload = normalizeFacePayload(it.Payload)
	}

	logger.Debug().Str("intent", string(it.Kind)).Msg("resolved intent")
	return it
}

func fallbackIntent() core.Intent {
	return core.Intent{Kind: core.IntentGeneralText}
}

// normalizeFacePayload guarantees a usable name; a missing or empty one
// becomes the literal "unknown" rather than an error.
func normalizeFacePayload(payload map[string]any) map[string]any {
	name := ""
	if payload != nil {
		if v, ok := payload["name"].(string); ok {
			name = strings.TrimSpace(v)
		}
	}
	if name == "" {
		name = "unknown"
	}
	return map[string]any{"name": name}
}

// extractJSONObject returns the first top-level brace-delimited object in s,
// tolerating surrounding prose and markdown fences. Brace tracking is
// string-aware so quoted braces do not end the object early.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
