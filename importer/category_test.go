package importer

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSlug(t *testing.T) {
	cases := map[string]string{
		"Home & Kitchen":    "home-kitchen",
		"  Electronics  ":   "electronics",
		"Wine, Beer & More": "wine-beer-more",
		"TVs":               "tvs",
		"---":               "",
		"":                  "",
		"already-a-slug":    "already-a-slug",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeSlug(input), "input %q", input)
	}
}

func TestNormalizeSlugIdempotent(t *testing.T) {
	inputs := []string{
		"Home & Kitchen",
		"Men's Running Shoes",
		"Wine, Beer & More!!!",
		"électronique spéciale",
		"plain",
	}
	for _, input := range inputs {
		once := NormalizeSlug(input)
		assert.Equal(t, once, NormalizeSlug(once), "slugify must be idempotent for %q", input)
	}
}

func TestInferCategoryFromText(t *testing.T) {
	cases := []struct {
		title string
		desc  string
		want  string
	}{
		// "shoes" hits the fashion rule before "running" can hit sports:
		// rule order is a defined tie-break.
		{"Men's Running Shoes", "", "fashion"},
		{"Wireless Headphones", "Noise cancelling", "electronics"},
		{"Memory Foam Mattress", "", "home"},
		{"Treadmill Pro 3000", "", "sports"},
		{"Single Malt Whisky 750ml", "", "liquor"},
		{"Puppy Chew Bundle", "for dogs", "pets"},
		{"Something Unrecognizable", "no keywords here", ""},
		{"", "", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, inferCategoryFromText(tc.title, tc.desc), "title %q", tc.title)
	}
}

func TestInferCategoryFromPath(t *testing.T) {
	cases := []struct {
		rawURL string
		want   string
	}{
		{"https://shop.example.com/electronics/phones/widget-3000", "widget-3000"},
		{"https://shop.example.com/c/a/b/xy/z", ""}, // all short segments
		{"https://shop.example.com/", ""},
		{"https://shop.example.com/xy/Garden-Tools", "garden-tools"},
	}
	for _, tc := range cases {
		u, err := url.Parse(tc.rawURL)
		require.NoError(t, err)
		assert.Equal(t, tc.want, inferCategoryFromPath(u), "url %q", tc.rawURL)
	}

	assert.Equal(t, "", inferCategoryFromPath(nil))
}
