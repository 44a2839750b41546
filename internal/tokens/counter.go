// Package tokens provides prompt-size estimation for observability. Counts
// feed log fields only; they never gate a request.
package tokens

import (
	"strings"
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

// charsPerToken is the approximation used when no codec is available.
const charsPerToken = 4

// Counter counts tokens for OpenAI-style models using tiktoken, falling
// back to a characters-per-token heuristic when the model is unknown.
type Counter struct {
	// codecCache caches tokenizer codecs by encoding name
	codecCache map[tokenizer.Encoding]tokenizer.Codec
	cacheMu    sync.RWMutex
}

// NewCounter creates a new token counter.
func NewCounter() *Counter {
	return &Counter{
		codecCache: make(map[tokenizer.Encoding]tokenizer.Codec),
	}
}

// Estimate returns the approximate total token count of texts for model.
func (c *Counter) Estimate(model string, texts ...string) int {
	codec, err := c.getCodec(model)
	if err != nil {
		return heuristic(texts)
	}

	total := 0
	for _, text := range texts {
		ids, _, err := codec.Encode(text)
		if err != nil {
			total += len(text) / charsPerToken
			continue
		}
		total += len(ids)
	}
	return total
}

// getCodec returns the tokenizer codec for a model.
func (c *Counter) getCodec(model string) (tokenizer.Codec, error) {
	// Try the exact model first
	codec, err := tokenizer.ForModel(tokenizer.Model(model))
	if err == nil {
		return codec, nil
	}

	// Fall back to an encoding chosen by model-name prefix
	encoding := modelToEncoding(model)

	c.cacheMu.RLock()
	if cached, ok := c.codecCache[encoding]; ok {
		c.cacheMu.RUnlock()
		return cached, nil
	}
	c.cacheMu.RUnlock()

	codec, err = tokenizer.Get(encoding)
	if err != nil {
		return nil, err
	}

	c.cacheMu.Lock()
	c.codecCache[encoding] = codec
	c.cacheMu.Unlock()

	return codec, nil
}

// modelToEncoding maps model names to encoding names for fallback.
//
// Encoding reference:
// - O200kBase: GPT-5, GPT-4.1, GPT-4o, O-series and newer models
// - Cl100kBase: GPT-4, GPT-3.5-turbo
func modelToEncoding(model string) tokenizer.Encoding {
	model = strings.ToLower(model)

	switch {
	case strings.HasPrefix(model, "gpt-5"),
		strings.HasPrefix(model, "gpt-4.1"),
		strings.HasPrefix(model, "gpt-4o"),
		strings.HasPrefix(model, "o1"),
		strings.HasPrefix(model, "o3"),
		strings.HasPrefix(model, "o4"):
		return tokenizer.O200kBase

	case strings.HasPrefix(model, "gpt-4"), strings.HasPrefix(model, "gpt-3.5"):
		return tokenizer.Cl100kBase

	default:
		// Most likely encoding for unknown/future models
		return tokenizer.O200kBase
	}
}

func heuristic(texts []string) int {
	total := 0
	for _, text := range texts {
		total += len(text) / charsPerToken
	}
	return total
}
