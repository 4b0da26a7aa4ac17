package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iCreativate/peboli-sub000/importer"
	"github.com/iCreativate/peboli-sub000/models"
)

type cannedFetcher struct {
	body string
	err  error
}

func (f *cannedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.body, f.err
}

// setupPipeline swaps the shared pipeline for one backed by a canned fetcher,
// restoring the original when the test ends.
func setupPipeline(t *testing.T, fetcher importer.Fetcher) {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	previous := Pipeline
	Pipeline = &importer.Importer{
		HTTP:      fetcher,
		Converter: importer.NewCurrencyConverter("http://127.0.0.1:1", nil, log),
		Log:       log,
	}
	t.Cleanup(func() { Pipeline = previous })
}

func decodeBody(rec *httptest.ResponseRecorder, v interface{}) error {
	return json.Unmarshal(rec.Body.Bytes(), v)
}

func doImport(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	ImportProductHandler(rec, req)
	return rec
}

func TestImportHandlerMissingURL(t *testing.T) {
	setupPipeline(t, &cannedFetcher{})

	rec := doImport("/api/import-product")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing url"}`, rec.Body.String())
}

func TestImportHandlerInvalidURL(t *testing.T) {
	setupPipeline(t, &cannedFetcher{})

	rec := doImport("/api/import-product?url=notaurl")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid url"}`, rec.Body.String())
}

func TestImportHandlerUpstreamStatus(t *testing.T) {
	setupPipeline(t, &cannedFetcher{err: &importer.FetchStatusError{Status: 404}})

	rec := doImport("/api/import-product?url=https://shop.example.com/gone")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch page (404)","status":404}`, rec.Body.String())
}

func TestImportHandlerTransportError(t *testing.T) {
	setupPipeline(t, &cannedFetcher{err: context.DeadlineExceeded})

	rec := doImport("/api/import-product?url=https://shop.example.com/slow")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch page"}`, rec.Body.String())
}

func TestImportHandlerSuccess(t *testing.T) {
	setupPipeline(t, &cannedFetcher{body: `<html><head>
		<script type="application/ld+json">
		{"@type":"Product","name":"Widget","offers":{"price":"100","priceCurrency":"USD"}}
		</script>
	</head></html>`})

	rec := doImport("/api/import-product?url=https://shop.example.com/p/widget")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var product models.ImportedProduct
	require.NoError(t, decodeBody(rec, &product))

	assert.Equal(t, "Widget", product.Title)
	require.NotNil(t, product.Price)
	assert.Equal(t, 1900.0, *product.Price)
	assert.Equal(t, "ZAR", product.Currency)
	require.NotNil(t, product.Images)
	assert.Empty(t, product.Images)
}

func TestImportHandlerImagesAlwaysPresent(t *testing.T) {
	setupPipeline(t, &cannedFetcher{body: `<html></html>`})

	rec := doImport("/api/import-product?url=https://shop.example.com/p/bare")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"images":[]`)
}
