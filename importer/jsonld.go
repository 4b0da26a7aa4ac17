package importer

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ldProduct holds the fields pulled out of the first schema.org Product node
// found on the page. Image URLs are still raw at this point; the harvester
// resolves them against the page URL.
type ldProduct struct {
	Name        string
	Description string
	Brand       string
	Category    string
	Currency    string
	Images      []string
	Price       *float64
	HighPrice   *float64
}

// extractStructuredData parses every <script type="application/ld+json"> block
// on the page. Malformed blocks are common in the wild and are skipped
// silently. Returns the first Product node and the category label derived
// from the first BreadcrumbList, either of which may be absent.
func extractStructuredData(doc *goquery.Document) (*ldProduct, string) {
	if doc == nil {
		return nil, ""
	}

	var product *ldProduct
	var breadcrumb string

	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, s *goquery.Selection) {
		var parsed interface{}
		if err := json.Unmarshal([]byte(s.Text()), &parsed); err != nil {
			return
		}

		if product == nil {
			if nodes := findTypedNodes(parsed, "Product"); len(nodes) > 0 {
				product = parseLDProduct(nodes[0])
			}
		}
		if breadcrumb == "" {
			if nodes := findTypedNodes(parsed, "BreadcrumbList"); len(nodes) > 0 {
				breadcrumb = breadcrumbCategory(nodes[0])
			}
		}
	})

	return product, breadcrumb
}

// findTypedNodes walks an untyped JSON tree and collects every object whose
// @type matches, including nodes nested in @graph arrays or anywhere else.
func findTypedNodes(v interface{}, nodeType string) []map[string]interface{} {
	var out []map[string]interface{}

	switch node := v.(type) {
	case map[string]interface{}:
		if typeMatches(node["@type"], nodeType) {
			out = append(out, node)
		}
		for _, child := range node {
			out = append(out, findTypedNodes(child, nodeType)...)
		}
	case []interface{}:
		for _, child := range node {
			out = append(out, findTypedNodes(child, nodeType)...)
		}
	}

	return out
}

// typeMatches handles @type as a plain string or an array of strings
func typeMatches(v interface{}, want string) bool {
	switch t := v.(type) {
	case string:
		return t == want
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

func parseLDProduct(node map[string]interface{}) *ldProduct {
	p := &ldProduct{
		Name:        stringField(node, "name"),
		Description: stringField(node, "description"),
		Category:    stringField(node, "category"),
		Images:      imageList(node["image"]),
	}

	p.Brand = nameOrString(node["brand"])
	if p.Brand == "" {
		p.Brand = nameOrString(node["manufacturer"])
	}

	if offer := firstOffer(node["offers"]); offer != nil {
		p.Currency = stringField(offer, "priceCurrency")

		// Baseline is the declared price, else the bottom of an offer range.
		p.Price = flexNumber(offer["price"])
		if p.Price == nil {
			p.Price = flexNumber(offer["lowPrice"])
		}

		if high := flexNumber(offer["highPrice"]); high != nil {
			if p.Price != nil && *high > *p.Price {
				p.HighPrice = high
			}
		}
	}

	return p
}

// firstOffer normalizes offers (single object or array) to the first object
func firstOffer(v interface{}) map[string]interface{} {
	switch offer := v.(type) {
	case map[string]interface{}:
		return offer
	case []interface{}:
		for _, item := range offer {
			if m, ok := item.(map[string]interface{}); ok {
				return m
			}
		}
	}
	return nil
}

// imageList accepts a bare string, an array of strings, or an array of
// ImageObject nodes with a url field
func imageList(v interface{}) []string {
	var out []string
	switch img := v.(type) {
	case string:
		if img != "" {
			out = append(out, img)
		}
	case map[string]interface{}:
		if u := stringField(img, "url"); u != "" {
			out = append(out, u)
		}
	case []interface{}:
		for _, item := range img {
			switch entry := item.(type) {
			case string:
				if entry != "" {
					out = append(out, entry)
				}
			case map[string]interface{}:
				if u := stringField(entry, "url"); u != "" {
					out = append(out, u)
				}
			}
		}
	}
	return out
}

// breadcrumbCategory picks the second-to-last breadcrumb label: the last
// crumb is assumed to be the product itself, the one before it the immediate
// category. A single-crumb trail yields that crumb.
func breadcrumbCategory(node map[string]interface{}) string {
	items, ok := node["itemListElement"].([]interface{})
	if !ok {
		return ""
	}

	var labels []string
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		label := stringField(entry, "name")
		if label == "" {
			if nested, ok := entry["item"].(map[string]interface{}); ok {
				label = stringField(nested, "name")
			}
		}
		if label != "" {
			labels = append(labels, label)
		}
	}

	switch {
	case len(labels) >= 2:
		return labels[len(labels)-2]
	case len(labels) == 1:
		return labels[0]
	}
	return ""
}

func stringField(node map[string]interface{}, key string) string {
	if s, ok := node[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// nameOrString handles schema.org fields that are either a plain string or
// an object with a name (Brand, Organization)
func nameOrString(v interface{}) string {
	switch b := v.(type) {
	case string:
		return strings.TrimSpace(b)
	case map[string]interface{}:
		return stringField(b, "name")
	}
	return ""
}

// flexNumber parses a JSON number or a price-like string ("1,299.00" or
// "R 1299"). Anything unparsable yields nil, never an error.
func flexNumber(v interface{}) *float64 {
	switch n := v.(type) {
	case float64:
		f := n
		return &f
	case string:
		return parsePrice(n)
	}
	return nil
}
