package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abdellahaitdahmou/full-store/internal/config"
	"github.com/abdellahaitdahmou/full-store/internal/gemini"
	"github.com/abdellahaitdahmou/full-store/internal/identity"
	"github.com/abdellahaitdahmou/full-store/internal/importer"
	"github.com/abdellahaitdahmou/full-store/internal/monitoring"
)

// fakeGenerator stands in for the Gemini client.
type fakeGenerator struct {
	reply   string
	err     error
	calls   int
	lastReq gemini.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req gemini.Request) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestServer(t *testing.T, gen gemini.Generator) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		ServerPort:     "0",
		GeminiModel:    "gemini-2.5-flash",
		RequestTimeout: 30,
	}
	logger := zap.NewNop()
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	browser := identity.NewManager()

	fetcher := importer.NewPageFetcher(5*time.Second, browser)
	miner := importer.NewMiner(config.DefaultImageBlacklist, 30, 15000)
	acquirer := importer.NewImageAcquirer(5*time.Second, 5, browser, metrics, logger)
	locale := importer.Locale{Language: "Arabic", Currency: "MAD", CurrencyHints: "Assume 1 USD = 10 MAD."}
	pipeline := importer.NewPipeline(fetcher, miner, acquirer, gen, locale, 5000, metrics, logger)

	srv := httptest.NewServer(NewServer(cfg, pipeline, metrics, logger).router)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func replyFor(images ...string) string {
	urls, _ := json.Marshal(images)
	return fmt.Sprintf(`{"title":"إبريق شاي","description":"وصف جذاب","price":250,"category":"ديكور المنزل","images":%s}`, urls)
}

func TestExtractSuccess(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/product" {
			fmt.Fprint(w, `<html><body>
				<p>Ceramic teapot, 25 USD.</p>
				<img src="`+serverURL(r)+`/img/1.jpg">
				<img src="`+serverURL(r)+`/img/2.jpg">
			</body></html>`)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpegbytes"))
	}))
	defer source.Close()

	gen := &fakeGenerator{reply: replyFor(source.URL + "/img/1.jpg")}
	srv := newTestServer(t, gen)

	resp, body := postJSON(t, srv.URL+"/extract", map[string]string{"url": source.URL + "/product"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "true", string(body["success"]))

	var data struct {
		Title  string   `json:"title"`
		Price  float64  `json:"price"`
		Images []string `json:"images"`
	}
	require.NoError(t, json.Unmarshal(body["data"], &data))
	assert.Equal(t, "إبريق شاي", data.Title)
	assert.Equal(t, 250.0, data.Price)
	assert.Equal(t, []string{source.URL + "/img/1.jpg"}, data.Images)

	// Both images downloaded and handed to the model as evidence.
	require.Equal(t, 1, gen.calls)
	assert.Len(t, gen.lastReq.Images, 2)
	assert.Contains(t, gen.lastReq.Prompt, source.URL+"/img/2.jpg")
}

// serverURL rebuilds the test server's own base URL from the request.
func serverURL(r *http.Request) string {
	return "http://" + r.Host
}

func TestExtractPageWithoutImages(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>Ceramic teapot, 25 USD.</p></body></html>`)
	}))
	defer source.Close()

	gen := &fakeGenerator{reply: replyFor()}
	srv := newTestServer(t, gen)

	resp, body := postJSON(t, srv.URL+"/extract", map[string]string{"url": source.URL})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var data struct {
		Title  string   `json:"title"`
		Images []string `json:"images"`
	}
	require.NoError(t, json.Unmarshal(body["data"], &data))
	assert.NotEmpty(t, data.Title)
	assert.Empty(t, data.Images)
	assert.Empty(t, gen.lastReq.Images)
}

func TestExtractSourceNotFound(t *testing.T) {
	source := httptest.NewServer(http.NotFoundHandler())
	defer source.Close()

	gen := &fakeGenerator{reply: replyFor()}
	srv := newTestServer(t, gen)

	resp, body := postJSON(t, srv.URL+"/extract", map[string]string{"url": source.URL})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
	// The model is never consulted for an unreachable page.
	assert.Zero(t, gen.calls)
}

func TestExtractModelReplyNotJSON(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>teapot</p></body></html>`)
	}))
	defer source.Close()

	gen := &fakeGenerator{reply: "not json at all"}
	srv := newTestServer(t, gen)

	resp, body := postJSON(t, srv.URL+"/extract", map[string]string{"url": source.URL})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestExtractModelFailure(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>teapot</p></body></html>`)
	}))
	defer source.Close()

	gen := &fakeGenerator{err: fmt.Errorf("quota exhausted")}
	srv := newTestServer(t, gen)

	resp, _ := postJSON(t, srv.URL+"/extract", map[string]string{"url": source.URL})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestExtractInvalidInput(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{})

	cases := map[string]any{
		"missing url": map[string]string{},
		"empty url":   map[string]string{"url": ""},
		"bad scheme":  map[string]string{"url": "ftp://example.com/x"},
		"not a url":   map[string]string{"url": "teapot"},
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			resp, body := postJSON(t, srv.URL+"/extract", payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestCategorize(t *testing.T) {
	gen := &fakeGenerator{reply: "  \"إلكترونيات\". "}
	srv := newTestServer(t, gen)

	resp, body := postJSON(t, srv.URL+"/categorize", map[string]string{"title": "سماعات بلوتوث"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `"إلكترونيات"`, string(body["category"]))
	assert.NotEmpty(t, gen.lastReq.System)
}

func TestCategorizeRequiresInput(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{})

	resp, body := postJSON(t, srv.URL+"/categorize", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, &fakeGenerator{})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
