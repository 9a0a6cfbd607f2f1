package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const translateTimeout = 15 * time.Second

// Translator renders card text into a target language. The identity
// implementation is the offline fallback.
type Translator interface {
	// TranslateBatch maps each input string to its translation, in
	// order. Implementations must return exactly len(texts) results.
	TranslateBatch(ctx context.Context, texts []string, lang string) ([]string, error)
}

// IdentityTranslator returns inputs unchanged. Used whenever the LLM
// is disabled or a translation fails.
type IdentityTranslator struct{}

func (IdentityTranslator) TranslateBatch(_ context.Context, texts []string, _ string) ([]string, error) {
	out := make([]string, len(texts))
	copy(out, texts)
	return out, nil
}

// TranslateBatch implements Translator on the Gemini client.
func (c *Client) TranslateBatch(ctx context.Context, texts []string, lang string) ([]string, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("llm disabled")
	}
	if len(texts) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(texts)
	if err != nil {
		return nil, err
	}
	system := fmt.Sprintf(`Translate each string in the JSON array into %s.
Keep rupee amounts, numbers, and proper nouns unchanged. Respond with a JSON
object {"translations": [...]} holding the translated strings in the same
order.`, lang)

	raw, err := c.generate(ctx, system, string(payload), true, translateTimeout)
	if err != nil {
		return nil, err
	}
	obj, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}
	var parsed struct {
		Translations []string `json:"translations"`
	}
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return nil, fmt.Errorf("parse translations: %w", err)
	}
	if len(parsed.Translations) != len(texts) {
		return nil, fmt.Errorf("translation count mismatch: want %d, got %d", len(texts), len(parsed.Translations))
	}
	return parsed.Translations, nil
}
