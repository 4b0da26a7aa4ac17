package importer

import "net/url"

// maxImages bounds the image-download work the admin UI performs after an
// import is confirmed.
const maxImages = 12

// harvestImages merges image candidates from every source, highest-trust
// source first. Order matters: the admin UI treats index 0 as the primary
// image. Relative URLs are resolved against the page URL; candidates that
// fail to parse are dropped. Duplicates keep their first position.
func harvestImages(base *url.URL, sources ...[]string) []string {
	seen := make(map[string]bool)
	out := []string{}

	for _, source := range sources {
		for _, candidate := range source {
			resolved, ok := resolveURL(base, candidate)
			if !ok || seen[resolved] {
				continue
			}
			seen[resolved] = true
			out = append(out, resolved)
			if len(out) == maxImages {
				return out
			}
		}
	}

	return out
}

// resolveURL turns a possibly-relative candidate into an absolute URL
func resolveURL(base *url.URL, candidate string) (string, bool) {
	if candidate == "" {
		return "", false
	}
	ref, err := url.Parse(candidate)
	if err != nil {
		return "", false
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if !ref.IsAbs() || ref.Host == "" {
		return "", false
	}
	return ref.String(), true
}
