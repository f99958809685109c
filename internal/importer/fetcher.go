package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/abdellahaitdahmou/full-store/internal/domain"
	"github.com/abdellahaitdahmou/full-store/internal/identity"
)

// maxPageBytes caps how much of a source page is read into memory.
const maxPageBytes = 10 << 20 // 10 MB

// PageFetcher retrieves raw page bytes with a browser-like identity.
type PageFetcher struct {
	client   *http.Client
	identity *identity.Manager
}

func NewPageFetcher(timeout time.Duration, id *identity.Manager) *PageFetcher {
	return &PageFetcher{
		client:   &http.Client{Timeout: timeout},
		identity: id,
	}
}

// Fetch performs a single GET against the source page. Any non-2xx status is
// terminal for the whole pipeline; there is no retry and no partial
// extraction from an error page.
func (f *PageFetcher) Fetch(ctx context.Context, pageURL string) (*domain.RawPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fetchErr(err)
	}
	f.identity.ApplyBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fetchErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fetchErr(fmt.Errorf("unexpected status %d from source page", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fetchErr(err)
	}

	return &domain.RawPage{HTML: string(body), StatusCode: resp.StatusCode}, nil
}
