package importer

import (
	"net/url"
	"regexp"
	"strings"
)

var slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeSlug turns a human-readable label into a lowercase hyphenated
// slug: "Home & Kitchen" -> "home-kitchen". Applying it twice is a no-op.
func NormalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugStripRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// categoryRule maps a keyword pattern to one of the canonical catalog slugs
type categoryRule struct {
	slug string
	re   *regexp.Regexp
}

// Rule order is load-bearing: the first match wins, so e.g. "running shoes"
// lands in fashion, not sports.
var categoryRules = []categoryRule{
	{"electronics", regexp.MustCompile(`(?i)\b(laptops?|notebooks?|phones?|smartphones?|tablets?|televisions?|tvs?|headphones?|earbuds?|earphones?|cameras?|consoles?|monitors?|keyboards?|chargers?|speakers?|routers?|drones?|smartwatch(es)?|gaming)\b`)},
	{"fashion", regexp.MustCompile(`(?i)\b(shirts?|t-shirts?|tees?|dress(es)?|jeans|shoes?|sneakers?|trousers?|jackets?|hoodies?|skirts?|handbags?|sandals?|heels?|boots?|apparel|clothing|fashion|denim)\b`)},
	{"home", regexp.MustCompile(`(?i)\b(sofas?|couch(es)?|mattress(es)?|curtains?|cookware|furniture|bedding|pillows?|lamps?|rugs?|kettles?|blenders?|microwaves?|decor|duvets?)\b`)},
	{"beauty", regexp.MustCompile(`(?i)\b(makeup|lipsticks?|mascaras?|skincare|perfumes?|fragrances?|shampoos?|conditioners?|moisturi[sz]ers?|serums?|cosmetics?)\b`)},
	{"sports", regexp.MustCompile(`(?i)\b(treadmills?|dumbbells?|yoga|fitness|gym|bicycles?|cycling|running|tennis|golf|soccer|rugby|cricket|sports?)\b`)},
	{"baby", regexp.MustCompile(`(?i)\b(bab(y|ies)|infants?|toddlers?|napp(y|ies)|diapers?|strollers?|prams?|cribs?)\b`)},
	{"liquor", regexp.MustCompile(`(?i)\b(whisk(y|ey)|vodka|gin|rum|tequila|brandy|wines?|beers?|liqueurs?|champagne|cider)\b`)},
	{"books", regexp.MustCompile(`(?i)\b(books?|novels?|paperback|hardcover|author|isbn)\b`)},
	{"automotive", regexp.MustCompile(`(?i)\b(cars?|tyres?|tires?|engines?|motorbikes?|motorcycles?|automotive|vehicles?|bakkies?)\b`)},
	{"pets", regexp.MustCompile(`(?i)\b(dogs?|cats?|pets?|pupp(y|ies)|kittens?|aquariums?|leash(es)?|kibble)\b`)},
	{"toys", regexp.MustCompile(`(?i)\b(toys?|lego|puzzles?|dolls?|board games?|action figures?|plush)\b`)},
	{"health", regexp.MustCompile(`(?i)\b(vitamins?|supplements?|protein|first aid|medicines?|thermometers?|wellness)\b`)},
	{"office", regexp.MustCompile(`(?i)\b(office|stationery|printers?|pens?|desks?|staplers?|files?|binders?)\b`)},
}

// inferCategoryFromText runs the keyword rules against the product's title
// and description, first match wins
func inferCategoryFromText(title, description string) string {
	text := title + " " + description
	if strings.TrimSpace(text) == "" {
		return ""
	}
	for _, rule := range categoryRules {
		if rule.re.MatchString(text) {
			return rule.slug
		}
	}
	return ""
}

// inferCategoryFromPath guesses a category from the source URL's path: the
// last up-to-4 non-empty segments are scanned deepest-first, and the first
// one longer than 2 characters is slugified. Crude, but a usable signal on
// /category/sub/product-slug style URLs when everything else came up empty.
func inferCategoryFromPath(u *url.URL) string {
	if u == nil {
		return ""
	}

	var segments []string
	for _, segment := range strings.Split(u.Path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) > 4 {
		segments = segments[len(segments)-4:]
	}

	for i := len(segments) - 1; i >= 0; i-- {
		if len(segments[i]) > 2 {
			return NormalizeSlug(segments[i])
		}
	}
	return ""
}
