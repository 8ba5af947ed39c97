package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

const comparePrompt = `These two photos each show a person's face.
Decide whether they show the SAME person.
Respond ONLY with:
"yes" -> same person
"no" -> different people or no face visible`

// Analyze answers the user's question about a captured camera frame.
func (c *Client) Analyze(ctx context.Context, image []byte, userText string) (string, error) {
	prompt := fmt.Sprintf("User said: %q\nUse the image to answer the user's request.\nKeep the answer short, helpful, clear.", userText)

	out, err := c.generate(ctx, "",
		genai.ImageData("jpeg", image),
		genai.Text(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("image analysis failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Compare reports whether the probe and reference images show the same person.
func (c *Client) Compare(ctx context.Context, probe, reference []byte) (bool, error) {
	out, err := c.generate(ctx, "",
		genai.ImageData("jpeg", probe),
		genai.ImageData("jpeg", reference),
		genai.Text(comparePrompt),
	)
	if err != nil {
		return false, fmt.Errorf("face comparison failed: %w", err)
	}
	return strings.Contains(strings.ToLower(out), "yes"), nil
}
