package domain

// ExtractRequest is the payload for the import API
type ExtractRequest struct {
	URL string `json:"url"`
}

// RawPage is the fetched source page before any mining.
type RawPage struct {
	HTML       string
	StatusCode int
}

// ImageCandidate is an absolute http(s) image URL discovered on the page.
// Candidates are unique by URL and keep first-seen document order, with
// page-level metadata images (og:image and friends) ranked first.
type ImageCandidate struct {
	URL string
}

// MinedContent is everything the miner pulls out of one page.
type MinedContent struct {
	Text               string
	StructuredMetadata string // JSON-LD blocks, verbatim
	ImageCandidates    []ImageCandidate
}

// ImageEvidence is the downloaded binary of a candidate image, attached to
// the model call so it can judge the actual pixels.
type ImageEvidence struct {
	URL      string
	MIMEType string
	Data     []byte
}

// ExtractionResult is the validated catalog record handed back to the admin
// product form. This service never persists it.
type ExtractionResult struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
}

// CategorizeRequest is the payload for the one-shot categorize assistant.
type CategorizeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
