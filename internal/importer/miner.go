package importer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/abdellahaitdahmou/full-store/internal/domain"
)

// metaImageSelectors are the trusted, page-level image sources. They are
// collected before inline <img> elements so preview images rank first.
const metaImageSelectors = `meta[property="og:image"], meta[name="og:image"], meta[name="twitter:image"], meta[property="twitter:image"]`

// noiseSelectors never contain product description text and would only burn
// the downstream token budget.
const noiseSelectors = "script, style, svg, nav, footer, noscript"

// Miner turns a raw page into bounded text, verbatim JSON-LD blocks, and an
// ordered, deduplicated set of candidate image URLs. It does no I/O.
type Miner struct {
	blacklist     []string
	maxCandidates int
	maxTextChars  int
}

func NewMiner(blacklist []string, maxCandidates, maxTextChars int) *Miner {
	return &Miner{
		blacklist:     blacklist,
		maxCandidates: maxCandidates,
		maxTextChars:  maxTextChars,
	}
}

// Mine parses the page HTML and extracts relevant data.
func (m *Miner) Mine(page *domain.RawPage) (*domain.MinedContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, fetchErr(err)
	}

	// JSON-LD is the highest-trust source for title and price. Capture it
	// verbatim before the noise removal below takes the script nodes with it.
	var structured strings.Builder
	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, s *goquery.Selection) {
		structured.WriteString(s.Text())
		structured.WriteString("\n")
	})

	doc.Find(noiseSelectors).Remove()

	candidates := m.collectImageCandidates(doc)

	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	text = truncateChars(text, m.maxTextChars)

	return &domain.MinedContent{
		Text:               text,
		StructuredMetadata: structured.String(),
		ImageCandidates:    candidates,
	}, nil
}

// collectImageCandidates merges the trusted metadata tier and the heuristic
// inline-image tier into one ordered, deduplicated, capped set.
func (m *Miner) collectImageCandidates(doc *goquery.Document) []domain.ImageCandidate {
	var candidates []domain.ImageCandidate
	seen := make(map[string]bool)

	add := func(raw string) {
		u, ok := normalizeImageURL(raw)
		if !ok || seen[u] || m.isBlacklisted(u) {
			return
		}
		if len(candidates) >= m.maxCandidates {
			return
		}
		seen[u] = true
		candidates = append(candidates, domain.ImageCandidate{URL: u})
	}

	// Tier A: page-level preview images.
	doc.Find(metaImageSelectors).Each(func(i int, s *goquery.Selection) {
		content, _ := s.Attr("content")
		add(content)
	})
	doc.Find(`link[rel="image_src"]`).Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		add(href)
	})

	// Tier B: inline images, including common lazy-loading attributes.
	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		for _, attr := range []string{"src", "data-src", "data-lazy-src"} {
			if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
				add(v)
				return
			}
		}
		if srcset, ok := s.Attr("srcset"); ok {
			add(firstSrcsetURL(srcset))
		}
	})

	return candidates
}

// normalizeImageURL upgrades protocol-relative URLs to https and drops
// anything that is not an absolute http(s) URL. A relative path cannot be
// resolved safely without the final, possibly-redirected page URL.
func normalizeImageURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "", false
	}
	return raw, true
}

// isBlacklisted flags near-certain non-photographic assets: anything whose
// URL carries a blacklist token, or vector/animation formats.
func (m *Miner) isBlacklisted(u string) bool {
	lower := strings.ToLower(u)
	for _, token := range m.blacklist {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return strings.HasSuffix(lower, ".svg") || strings.HasSuffix(lower, ".gif")
}

// firstSrcsetURL picks the first entry of a srcset attribute, ignoring the
// width/density descriptor.
func firstSrcsetURL(srcset string) string {
	first, _, _ := strings.Cut(srcset, ",")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// truncateChars cuts s to at most n characters, even mid-sentence. The limit
// protects the prompt budget, not readability.
func truncateChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
