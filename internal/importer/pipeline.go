// Package importer implements the remote product-page extraction pipeline:
// fetch an untrusted page, mine bounded text and candidate images out of it,
// download a handful of images as visual evidence, ask a multimodal model
// for a localized catalog record, and validate the reply.
package importer

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abdellahaitdahmou/full-store/internal/domain"
	"github.com/abdellahaitdahmou/full-store/internal/gemini"
	"github.com/abdellahaitdahmou/full-store/internal/monitoring"
)

// Pipeline wires the extraction stages together. Every request runs the
// stages strictly in order; only the evidence downloads inside the acquirer
// fan out. Nothing here outlives a single call.
type Pipeline struct {
	fetcher      *PageFetcher
	miner        *Miner
	acquirer     *ImageAcquirer
	generator    gemini.Generator
	locale       Locale
	maxPromptLen int
	metrics      *monitoring.Metrics
	logger       *zap.Logger
}

func NewPipeline(f *PageFetcher, mn *Miner, a *ImageAcquirer, g gemini.Generator, loc Locale, maxPromptLen int, m *monitoring.Metrics, l *zap.Logger) *Pipeline {
	return &Pipeline{
		fetcher:      f,
		miner:        mn,
		acquirer:     a,
		generator:    g,
		locale:       loc,
		maxPromptLen: maxPromptLen,
		metrics:      m,
		logger:       l,
	}
}

// Extract runs the full pipeline for one source URL.
func (p *Pipeline) Extract(ctx context.Context, sourceURL string) (*domain.ExtractionResult, error) {
	start := time.Now()

	page, err := p.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		p.fail(sourceURL, "fetch_failed", err)
		return nil, err
	}

	mined, err := p.miner.Mine(page)
	if err != nil {
		p.fail(sourceURL, "mine_failed", err)
		return nil, err
	}
	p.logger.Info("page mined",
		zap.String("url", sourceURL),
		zap.Int("text_chars", len(mined.Text)),
		zap.Int("image_candidates", len(mined.ImageCandidates)),
		zap.Bool("has_structured_data", mined.StructuredMetadata != ""),
	)

	evidence := p.acquirer.Download(ctx, mined.ImageCandidates)
	p.metrics.EvidenceImages.Observe(float64(len(evidence)))

	prompt := buildExtractionPrompt(p.locale, mined, p.maxPromptLen)
	reply, err := p.generator.Generate(ctx, gemini.Request{
		Prompt: prompt,
		Images: evidence,
	})
	if err != nil {
		p.fail(sourceURL, "model_failed", err)
		return nil, modelErr(err)
	}

	result, err := parseExtractionReply(reply, mined.ImageCandidates)
	if err != nil {
		p.fail(sourceURL, "parse_failed", err)
		return nil, err
	}

	p.metrics.IncExtraction("success")
	p.metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("extraction complete",
		zap.String("url", sourceURL),
		zap.String("title", result.Title),
		zap.Float64("price", result.Price),
		zap.Int("images", len(result.Images)),
		zap.Duration("took", time.Since(start)),
	)
	return result, nil
}

// Categorize is the one-shot classification assistant: a single low
// temperature prompt/response call, no heuristics.
func (p *Pipeline) Categorize(ctx context.Context, title, description string) (string, error) {
	reply, err := p.generator.Generate(ctx, gemini.Request{
		System:      CategorizeSystemInstruction,
		Prompt:      buildCategorizePrompt(title, description),
		Temperature: 0.2,
	})
	if err != nil {
		p.metrics.IncErrorsTotal("model_failed")
		return "", modelErr(err)
	}

	p.metrics.CategorizationsTotal.Inc()
	category := strings.TrimSpace(reply)
	category = strings.Trim(category, `'"*-.`)
	return strings.TrimSpace(category), nil
}

func (p *Pipeline) fail(sourceURL, errType string, err error) {
	p.metrics.IncExtraction("failed")
	p.metrics.IncErrorsTotal(errType)
	p.logger.Warn("extraction failed", zap.String("url", sourceURL), zap.String("stage", errType), zap.Error(err))
}
