package identity

import (
	"math/rand"
	"net/http"
	"time"
)

// Manager hands out realistic browser header sets. Source pages routinely
// serve thin or blocked responses to obvious bot traffic, so looking like a
// desktop browser is a functional requirement here, not cosmetics.
type Manager struct {
	userAgents []string
}

func NewManager() *Manager {
	return &Manager{
		userAgents: []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
	}
}

// UserAgent returns a random user agent string.
func (m *Manager) UserAgent() string {
	if len(m.userAgents) == 0 {
		return ""
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return m.userAgents[r.Intn(len(m.userAgents))]
}

// ApplyBrowserHeaders sets the header trio a real browser would send on a
// page navigation.
func (m *Manager) ApplyBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", m.UserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
}

// ApplyImageHeaders sets headers for an inline image request.
func (m *Manager) ApplyImageHeaders(req *http.Request) {
	req.Header.Set("User-Agent", m.UserAgent())
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")
}
