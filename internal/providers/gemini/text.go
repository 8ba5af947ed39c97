package gemini

import (
	"context"

	"github.com/google/generative-ai-go/genai"
)

const assistantSystemPrompt = "You are LifeOS AI assistant on a pair of smart glasses. Reply concisely and be helpful."

// Generate answers a user utterance in the assistant persona.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, assistantSystemPrompt, genai.Text(prompt))
}

// Complete runs a bare completion without the assistant persona. Used for
// prompts that carry their own full instructions, like intent classification.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, "", genai.Text(prompt))
}
