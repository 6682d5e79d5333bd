package Gemini

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync/atomic"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// KeyDispenser hands out API keys round-robin. Quota is per key, so rotating
// spreads itinerary generations across the configured keys. It is the only
// piece of shared mutable state in the service and nothing in the planning
// engine touches it.
type KeyDispenser struct {
	keys []string
	next atomic.Uint64
}

// NewKeyDispenser reads GEMINI_API_KEYS (comma separated) or falls back to
// GEMINI_API_KEY.
func NewKeyDispenser() *KeyDispenser {
	raw := os.Getenv("GEMINI_API_KEYS")
	if raw == "" {
		raw = os.Getenv("GEMINI_API_KEY")
	}
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return &KeyDispenser{keys: keys}
}

// Next returns the next key in rotation.
func (d *KeyDispenser) Next() (string, error) {
	if len(d.keys) == 0 {
		return "", errors.New("no Gemini API key configured")
	}
	n := d.next.Add(1) - 1
	return d.keys[n%uint64(len(d.keys))], nil
}

// generateText sends one prompt to the model and returns the raw text reply.
func generateText(ctx context.Context, dispenser *KeyDispenser, prompt string) (string, error) {
	key, err := dispenser.Next()
	if err != nil {
		return "", err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.5-flash")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from model")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}
