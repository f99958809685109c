// Package gemini wraps the Google Gemini API behind a small boundary the
// pipeline can fake in tests.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/abdellahaitdahmou/full-store/internal/domain"
)

// Request is one multimodal generation call: an optional system instruction,
// a prompt, and zero or more inline image payloads.
type Request struct {
	System      string
	Prompt      string
	Images      []domain.ImageEvidence
	Temperature float32
}

// Generator is the extraction-service boundary. The real implementation is
// Client; tests inject fakes.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Client is a Gemini-backed Generator. It is constructed explicitly from an
// injected API key and passed into the pipeline; there is no package-level
// singleton.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Client{client: c, model: model}, nil
}

// Generate performs a single request/response call. No streaming, no
// multi-turn correction loop.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	for _, img := range req.Images {
		parts = append(parts, genai.NewPartFromBytes(img.Data, img.MIMEType))
	}

	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(req.Temperature)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	return resp.Text(), nil
}
