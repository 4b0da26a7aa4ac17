// Package importer implements the product-metadata import pipeline: fetch a
// remote product page, mine JSON-LD / Open Graph / inline markup for product
// fields, and assemble a best-effort ImportedProduct for the admin catalog
// UI. Extraction never fails hard; a page with no usable signals simply
// yields an empty product.
package importer

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/iCreativate/peboli-sub000/models"
)

// Render modes for Options.Render
const (
	RenderNone    = ""        // plain HTTP GET (default)
	RenderBrowser = "browser" // headless Chrome via chromedp
	RenderFull    = "full"    // full browser via selenium
)

// Options control a single import run
type Options struct {
	Render string
}

// Importer runs the import pipeline. Construct with New.
type Importer struct {
	HTTP      Fetcher
	Browser   Fetcher
	Selenium  Fetcher
	Converter *CurrencyConverter
	Log       *logrus.Logger
}

func New(converter *CurrencyConverter, log *logrus.Logger) *Importer {
	return &Importer{
		HTTP:      NewHTTPFetcher(),
		Browser:   &BrowserFetcher{},
		Selenium:  &SeleniumFetcher{},
		Converter: converter,
		Log:       log,
	}
}

// Import fetches the page and extracts a product candidate from it. The only
// hard failures are an invalid URL and an unreachable page; everything past
// the fetch degrades gracefully.
func (imp *Importer) Import(ctx context.Context, pageURL string, opts Options) (*models.ImportedProduct, error) {
	if !isValidPageURL(pageURL) {
		return nil, ErrInvalidURL
	}

	fetcher := imp.HTTP
	switch opts.Render {
	case RenderBrowser:
		fetcher = imp.Browser
	case RenderFull:
		fetcher = imp.Selenium
	}

	body, err := fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	product := Extract(pageURL, body)

	if imp.Converter != nil {
		product.Currency, product.Price, product.CompareAtPrice =
			imp.Converter.normalizeCurrency(ctx, product.Currency, product.Price, product.CompareAtPrice)
	}

	if imp.Log != nil {
		imp.Log.WithFields(logrus.Fields{
			"url":      pageURL,
			"title":    product.Title,
			"images":   len(product.Images),
			"category": product.Category,
		}).Info("Import pipeline finished")
	}

	return product, nil
}

func isValidPageURL(pageURL string) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Extract mines the raw HTML for product fields. Structured data wins over
// meta tags, meta tags win over anything inferred. Pure and fetch-free, so
// the whole resolution chain is testable from canned HTML.
func Extract(pageURL, body string) *models.ImportedProduct {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	doc, docErr := goquery.NewDocumentFromReader(strings.NewReader(body))
	if docErr != nil {
		doc = nil
	}

	metas := parseMetaTags(body)

	ld, breadcrumb := extractStructuredData(doc)
	if ld == nil {
		ld = &ldProduct{}
	}

	product := &models.ImportedProduct{
		Title: firstNonEmpty(
			ld.Name,
			metaFirst(metas, "og:title", "twitter:title"),
		),
		Description: firstNonEmpty(
			ld.Description,
			metaFirst(metas, "og:description", "description", "twitter:description"),
		),
		Brand: firstNonEmpty(
			ld.Brand,
			metaFirst(metas, "og:brand"),
			metaFirst(metas, "og:site_name"),
		),
	}

	if ld.Price != nil {
		product.Price = ld.Price
		product.CompareAtPrice = ld.HighPrice
		product.Currency = strings.TrimSpace(ld.Currency)
	} else if metaPrice := parsePrice(metaFirst(metas, "og:price:amount", "product:price:amount")); metaPrice != nil {
		product.Price = metaPrice
	}
	if product.Currency == "" && product.Price != nil {
		product.Currency = metaFirst(metas, "og:price:currency", "product:price:currency")
	}

	product.Images = harvestImages(base,
		ld.Images,
		metaAll(metas, "og:image"),
		metaAll(metas, "twitter:image"),
		[]string{linkRelImage(doc)},
		inlineImages(doc),
	)

	product.Category = firstNonEmpty(
		NormalizeSlug(ld.Category),
		NormalizeSlug(breadcrumb),
		inferCategoryFromText(product.Title, product.Description),
		inferCategoryFromPath(base),
	)

	return product
}

// parsePrice strips everything but digits and dots before parsing, so
// "R 1,299.00" and "$49" both come through. Unparsable input yields nil.
func parsePrice(s string) *float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
