package importer

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// metaTag is one <meta> occurrence, in document order
type metaTag struct {
	key     string
	content string
}

var (
	metaElementRe = regexp.MustCompile(`(?is)<meta\b[^>]*>`)
	metaAttrRe    = regexp.MustCompile(`(?is)(property|name|content)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

// parseMetaTags regex-scans the raw HTML for every <meta> tag. Attribute
// order (property before content or after) and quoting style both vary
// across sites, so each tag's attributes are picked apart individually.
// Tags without a property/name or content attribute are ignored.
func parseMetaTags(body string) []metaTag {
	var tags []metaTag

	for _, element := range metaElementRe.FindAllString(body, -1) {
		var key, content string
		for _, attr := range metaAttrRe.FindAllStringSubmatch(element, -1) {
			value := attr[2]
			if value == "" {
				value = attr[3]
			}
			switch strings.ToLower(attr[1]) {
			case "property", "name":
				if key == "" {
					key = strings.ToLower(strings.TrimSpace(value))
				}
			case "content":
				content = value
			}
		}
		if key != "" {
			tags = append(tags, metaTag{key: key, content: strings.TrimSpace(html.UnescapeString(content))})
		}
	}

	return tags
}

// metaFirst returns the first non-empty content among the given keys, keys
// tried in order (fallback chain)
func metaFirst(tags []metaTag, keys ...string) string {
	for _, key := range keys {
		for _, tag := range tags {
			if tag.key == key && tag.content != "" {
				return tag.content
			}
		}
	}
	return ""
}

// metaAll returns every occurrence of a key in document order
func metaAll(tags []metaTag, key string) []string {
	var out []string
	for _, tag := range tags {
		if tag.key == key && tag.content != "" {
			out = append(out, tag.content)
		}
	}
	return out
}

// linkRelImage extracts the legacy <link rel="image_src"> fallback
func linkRelImage(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	href, _ := doc.Find(`link[rel="image_src"]`).First().Attr("href")
	return strings.TrimSpace(href)
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// inlineImages collects candidate URLs from <img> tags, including the usual
// lazy-load attributes and the first URL of each srcset entry. Only URLs with
// a recognized image extension survive, to keep tracking pixels and SVG icons
// out of the import.
func inlineImages(doc *goquery.Document) []string {
	if doc == nil {
		return nil
	}

	var candidates []string
	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		for _, attr := range []string{"src", "data-src", "data-original", "data-lazy"} {
			if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
				candidates = append(candidates, strings.TrimSpace(v))
			}
		}
		if srcset, ok := s.Attr("srcset"); ok {
			for _, entry := range strings.Split(srcset, ",") {
				fields := strings.Fields(strings.TrimSpace(entry))
				if len(fields) > 0 {
					candidates = append(candidates, fields[0])
				}
			}
		}
	})

	var out []string
	for _, candidate := range candidates {
		if hasImageExtension(candidate) {
			out = append(out, candidate)
		}
	}
	return out
}

func hasImageExtension(rawURL string) bool {
	cleaned := strings.ToLower(rawURL)
	if i := strings.IndexAny(cleaned, "?#"); i >= 0 {
		cleaned = cleaned[:i]
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(cleaned, ext) {
			return true
		}
	}
	return false
}
