// Package ai generates flashcard proposals from source text using
// Google's Gemini API.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/deckwise/backend/internal/config"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// CardProposal is a single generated flashcard candidate.
type CardProposal struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Client wraps the Gemini client and the model it targets.
type Client struct {
	client *genai.Client
	model  string
	logger *zerolog.Logger
}

// NewClient creates a card generation client from config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) (*Client, error) {
	if cfg.Integration.GeminiAPIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.Integration.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		client: client,
		model:  cfg.Integration.GeminiModel,
		logger: logger,
	}, nil
}

// Model returns the model name used for generation, recorded on the
// generation row for auditing.
func (c *Client) Model() string {
	return c.model
}

const prompt = `You are a flashcard author. From the source text below, produce
concise question/answer flashcards covering its key facts. Respond with a JSON
array only, each element an object with "front" (question) and "back" (answer)
string fields. Produce between 3 and 20 cards.

Source text:
%s`

// GenerateCards asks the model for flashcard proposals covering the source
// text. The model is instructed to reply with a bare JSON array; a fenced or
// otherwise decorated reply is trimmed before decoding.
func (c *Client) GenerateCards(ctx context.Context, sourceText string) ([]CardProposal, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf(prompt, sourceText), genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("generate content failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var proposals []CardProposal
	if err := json.Unmarshal([]byte(text), &proposals); err != nil {
		return nil, fmt.Errorf("decoding card proposals: %w", err)
	}
	if len(proposals) == 0 {
		return nil, fmt.Errorf("model returned no card proposals")
	}

	for i, p := range proposals {
		if strings.TrimSpace(p.Front) == "" || strings.TrimSpace(p.Back) == "" {
			return nil, fmt.Errorf("card proposal %d has an empty side", i)
		}
	}

	return proposals, nil
}
