package identity

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserHeaders(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "https://example.com/p", nil)
	require.NoError(t, err)

	NewManager().ApplyBrowserHeaders(req)

	assert.True(t, strings.HasPrefix(req.Header.Get("User-Agent"), "Mozilla/5.0"))
	assert.Contains(t, req.Header.Get("Accept"), "text/html")
	assert.Contains(t, req.Header.Get("Accept-Language"), "en")
}

func TestImageHeaders(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "https://example.com/p.jpg", nil)
	require.NoError(t, err)

	NewManager().ApplyImageHeaders(req)

	assert.True(t, strings.HasPrefix(req.Header.Get("User-Agent"), "Mozilla/5.0"))
	assert.Contains(t, req.Header.Get("Accept"), "image/")
}
