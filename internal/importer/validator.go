package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/abdellahaitdahmou/full-store/internal/domain"
)

// maxResultImages bounds how many image URLs the final record may carry.
const maxResultImages = 4

var (
	errEmptyReply      = errors.New("empty model reply")
	errMissingTitle    = errors.New("missing or empty title")
	errMissingDesc     = errors.New("missing or empty description")
	errMissingCategory = errors.New("missing or empty category")
)

// parseExtractionReply turns the model's free-form reply into a validated
// ExtractionResult. The model is told not to emit Markdown fences but is
// tolerated if it does anyway. Image URLs the model was never offered are
// dropped; the model must not be trusted to invent evidence.
func parseExtractionReply(reply string, candidates []domain.ImageCandidate) (*domain.ExtractionResult, error) {
	cleaned := stripFences(strings.TrimSpace(reply))
	if cleaned == "" {
		return nil, parseErr(errEmptyReply)
	}

	var raw struct {
		Title       string      `json:"title"`
		Description string      `json:"description"`
		Price       json.Number `json:"price"`
		Category    string      `json:"category"`
		Images      []string    `json:"images"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, parseErr(err)
	}

	if strings.TrimSpace(raw.Title) == "" {
		return nil, parseErr(errMissingTitle)
	}
	if strings.TrimSpace(raw.Description) == "" {
		return nil, parseErr(errMissingDesc)
	}
	if strings.TrimSpace(raw.Category) == "" {
		return nil, parseErr(errMissingCategory)
	}

	price, err := raw.Price.Float64()
	if err != nil {
		return nil, parseErr(fmt.Errorf("price is not numeric: %w", err))
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, parseErr(fmt.Errorf("price out of range: %v", price))
	}

	offered := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		offered[c.URL] = true
	}
	images := make([]string, 0, maxResultImages)
	for _, u := range raw.Images {
		if !offered[u] {
			continue
		}
		images = append(images, u)
		if len(images) == maxResultImages {
			break
		}
	}

	return &domain.ExtractionResult{
		Title:       raw.Title,
		Description: raw.Description,
		Price:       price,
		Category:    raw.Category,
		Images:      images,
	}, nil
}

// stripFences removes a leading ```json or ``` marker and a trailing ```
// if the reply is wrapped in a Markdown code block.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
