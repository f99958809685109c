package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abdellahaitdahmou/full-store/internal/domain"
	"github.com/abdellahaitdahmou/full-store/internal/identity"
	"github.com/abdellahaitdahmou/full-store/internal/monitoring"
)

// maxImageBytes caps a single evidence download.
const maxImageBytes = 8 << 20 // 8 MB

// ImageAcquirer downloads the top candidate images as visual evidence for
// the extraction model. Failures are per-image and never fail the request.
type ImageAcquirer struct {
	client      *http.Client
	identity    *identity.Manager
	logger      *zap.Logger
	metrics     *monitoring.Metrics
	maxEvidence int
}

func NewImageAcquirer(timeout time.Duration, maxEvidence int, id *identity.Manager, m *monitoring.Metrics, l *zap.Logger) *ImageAcquirer {
	return &ImageAcquirer{
		client:      &http.Client{Timeout: timeout},
		identity:    id,
		logger:      l,
		metrics:     m,
		maxEvidence: maxEvidence,
	}
}

// Download fetches the first maxEvidence candidates concurrently and returns
// whatever succeeded, in candidate order. A candidate that fails to download
// or is not an image content-type simply contributes no evidence; its URL is
// still shown textually to the model by the prompt.
func (a *ImageAcquirer) Download(ctx context.Context, candidates []domain.ImageCandidate) []domain.ImageEvidence {
	n := min(len(candidates), a.maxEvidence)
	if n == 0 {
		return nil
	}

	results := make([]*domain.ImageEvidence, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int, imageURL string) {
			defer wg.Done()
			ev, err := a.download(ctx, imageURL)
			if err != nil {
				a.logger.Warn("skipping image candidate", zap.String("url", imageURL), zap.Error(err))
				a.metrics.IncErrorsTotal("image_fetch_failed")
				return
			}
			results[i] = ev
		}(i, candidates[i].URL)
	}
	wg.Wait()

	evidence := make([]domain.ImageEvidence, 0, n)
	for _, ev := range results {
		if ev != nil {
			evidence = append(evidence, *ev)
		}
	}
	return evidence
}

// download performs the single attempt for one candidate. No retry; a failed
// attempt is final for this request.
func (a *ImageAcquirer) download(ctx context.Context, imageURL string) (*domain.ImageEvidence, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	a.identity.ApplyImageHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	mimeType := resp.Header.Get("Content-Type")
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	mimeType = strings.TrimSpace(mimeType)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("not an image content-type: %q", mimeType)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, err
	}

	return &domain.ImageEvidence{URL: imageURL, MIMEType: mimeType, Data: data}, nil
}
