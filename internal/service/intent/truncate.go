package intent

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once
)

func getTokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	return tk, tkErr
}

// truncateTokens cuts text down to at most max tokens. When the tokenizer
// is unavailable it falls back to a conservative rune cap so classification
// still happens.
func truncateTokens(text string, max int) string {
	enc, err := getTokenizer()
	if err != nil {
		runes := []rune(text)
		if len(runes) > max*4 {
			return string(runes[:max*4])
		}
		return text
	}

	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= max {
		return text
	}
	return enc.Decode(tokens[:max])
}
