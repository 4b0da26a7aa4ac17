package utils

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Hosts that are pure redirectors; anything else is fetched as given
var shortenerHosts = map[string]bool{
	"amzn.to":     true,
	"amzn.in":     true,
	"amzn.eu":     true,
	"bit.ly":      true,
	"fkrt.it":     true,
	"tinyurl.com": true,
}

// IsShortenedURL reports whether the URL points at a known link shortener
func IsShortenedURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return shortenerHosts[strings.ToLower(u.Host)]
}

// ResolveShortenedURL follows redirects to find the final URL. Admins often
// paste short links; the pipeline needs the real page URL as its base for
// resolving relative image paths.
func ResolveShortenedURL(rawURL string) (string, error) {
	client := &http.Client{
		Timeout: 15 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return nil // keep following
		},
	}

	req, err := http.NewRequest(http.MethodHead, rawURL, nil)
	if err != nil {
		return rawURL, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := client.Do(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		// Some shorteners block HEAD; retry as GET
		req, err = http.NewRequest(http.MethodGet, rawURL, nil)
		if err != nil {
			return rawURL, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

		resp, err = client.Do(req)
		if err != nil {
			return rawURL, err
		}
	}
	defer resp.Body.Close()

	return resp.Request.URL.String(), nil
}
