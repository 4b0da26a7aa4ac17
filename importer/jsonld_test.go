package importer

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func ldScript(payload string) string {
	return `<html><head><script type="application/ld+json">` + payload + `</script></head><body></body></html>`
}

func TestExtractStructuredDataBasicProduct(t *testing.T) {
	doc := docFromHTML(t, ldScript(`{
		"@context": "https://schema.org",
		"@type": "Product",
		"name": "Widget",
		"description": "A fine widget",
		"image": ["https://cdn.example.com/w1.jpg", "https://cdn.example.com/w2.jpg"],
		"brand": {"@type": "Brand", "name": "Widgetly"},
		"category": "Home & Kitchen",
		"offers": {"@type": "Offer", "price": "100", "priceCurrency": "USD"}
	}`))

	product, _ := extractStructuredData(doc)
	require.NotNil(t, product)

	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, "A fine widget", product.Description)
	assert.Equal(t, "Widgetly", product.Brand)
	assert.Equal(t, "Home & Kitchen", product.Category)
	assert.Equal(t, "USD", product.Currency)
	assert.Equal(t, []string{"https://cdn.example.com/w1.jpg", "https://cdn.example.com/w2.jpg"}, product.Images)
	require.NotNil(t, product.Price)
	assert.Equal(t, 100.0, *product.Price)
	assert.Nil(t, product.HighPrice)
}

func TestExtractStructuredDataProductInGraph(t *testing.T) {
	doc := docFromHTML(t, ldScript(`{
		"@context": "https://schema.org",
		"@graph": [
			{"@type": "WebSite", "name": "Shop"},
			{"@type": ["Thing", "Product"], "name": "Graph Widget",
			 "offers": [{"lowPrice": 50, "highPrice": 80, "priceCurrency": "ZAR"}]}
		]
	}`))

	product, _ := extractStructuredData(doc)
	require.NotNil(t, product)

	assert.Equal(t, "Graph Widget", product.Name)
	require.NotNil(t, product.Price)
	assert.Equal(t, 50.0, *product.Price)
	require.NotNil(t, product.HighPrice)
	assert.Equal(t, 80.0, *product.HighPrice)
	assert.Equal(t, "ZAR", product.Currency)
}

func TestExtractStructuredDataHighPriceNotGreater(t *testing.T) {
	doc := docFromHTML(t, ldScript(`{
		"@type": "Product",
		"name": "Flat Offer",
		"offers": {"price": "80", "highPrice": "80"}
	}`))

	product, _ := extractStructuredData(doc)
	require.NotNil(t, product)
	require.NotNil(t, product.Price)
	assert.Nil(t, product.HighPrice, "highPrice equal to price must not become a compare-at candidate")
}

func TestExtractStructuredDataMalformedBlockSkipped(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">{not valid json</script>
		<script type="application/ld+json">{"@type":"Product","name":"Survivor"}</script>
	</head><body></body></html>`

	product, _ := extractStructuredData(docFromHTML(t, html))
	require.NotNil(t, product)
	assert.Equal(t, "Survivor", product.Name)
}

func TestExtractStructuredDataNoProduct(t *testing.T) {
	product, breadcrumb := extractStructuredData(docFromHTML(t, `<html><body><p>hello</p></body></html>`))
	assert.Nil(t, product)
	assert.Equal(t, "", breadcrumb)
}

func TestExtractStructuredDataImageObjectList(t *testing.T) {
	doc := docFromHTML(t, ldScript(`{
		"@type": "Product",
		"name": "Obj Images",
		"image": [{"@type": "ImageObject", "url": "https://cdn.example.com/a.jpg"}, "https://cdn.example.com/b.jpg"]
	}`))

	product, _ := extractStructuredData(doc)
	require.NotNil(t, product)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, product.Images)
}

func TestExtractStructuredDataManufacturerFallback(t *testing.T) {
	doc := docFromHTML(t, ldScript(`{
		"@type": "Product",
		"name": "No Brand",
		"manufacturer": "Makers Inc"
	}`))

	product, _ := extractStructuredData(doc)
	require.NotNil(t, product)
	assert.Equal(t, "Makers Inc", product.Brand)
}

func TestBreadcrumbSecondToLast(t *testing.T) {
	doc := docFromHTML(t, ldScript(`{
		"@type": "BreadcrumbList",
		"itemListElement": [
			{"@type": "ListItem", "position": 1, "name": "Home"},
			{"@type": "ListItem", "position": 2, "item": {"name": "Electronics"}},
			{"@type": "ListItem", "position": 3, "name": "Widget 3000"}
		]
	}`))

	_, breadcrumb := extractStructuredData(doc)
	assert.Equal(t, "Electronics", breadcrumb)
}

func TestBreadcrumbSingleLabel(t *testing.T) {
	doc := docFromHTML(t, ldScript(`{
		"@type": "BreadcrumbList",
		"itemListElement": [{"name": "Only"}]
	}`))

	_, breadcrumb := extractStructuredData(doc)
	assert.Equal(t, "Only", breadcrumb)
}

func TestFindTypedNodesTypeArray(t *testing.T) {
	tree := map[string]interface{}{
		"@type": []interface{}{"Thing", "Product"},
		"name":  "x",
	}
	nodes := findTypedNodes(tree, "Product")
	require.Len(t, nodes, 1)
	assert.Equal(t, "x", nodes[0]["name"])

	assert.Empty(t, findTypedNodes(tree, "BreadcrumbList"))
}

func TestFlexNumber(t *testing.T) {
	require.NotNil(t, flexNumber(12.5))
	assert.Equal(t, 12.5, *flexNumber(12.5))

	require.NotNil(t, flexNumber("1,299.00"))
	assert.Equal(t, 1299.0, *flexNumber("1,299.00"))

	assert.Nil(t, flexNumber("not a price"))
	assert.Nil(t, flexNumber(nil))
	assert.Nil(t, flexNumber(true))
}
