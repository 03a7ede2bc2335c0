// Package websearch scrapes search result pages for the first useful link.
// No official APIs, no API keys: results come from parsing the public HTML
// the way a browser would receive it.
package websearch

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/aide-sh/aide/internal/ratelimit"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

var watchLink = regexp.MustCompile(`href="(/watch\?v=[\w-]+)"`)

// Client performs search scraping. The HTTP client and endpoint bases are
// configurable so tests can point at a local server. Requests are rate
// limited per host so repeated lookups don't hammer the scraped sites.
type Client struct {
	httpClient  *http.Client
	googleBase  string
	youtubeBase string
	limiter     *ratelimit.Limiter
}

// NewClient creates a Client with sane timeouts against the public
// endpoints.
func NewClient() *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		googleBase:  "https://www.google.com",
		youtubeBase: "https://www.youtube.com",
		limiter:     ratelimit.NewLimiter(1.0, 5),
	}
}

func (c *Client) fetch(rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if c.limiter != nil && !c.limiter.Allow(req.URL.Host) {
		return nil, fmt.Errorf("fetching %s: rate limited", rawURL)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: status %d", rawURL, resp.StatusCode)
	}
	return resp.Body, nil
}

// GoogleFirstResult returns the first non-Google result link for a query.
// Result links on the no-JS page are anchors of the form /url?q=<target>.
func (c *Client) GoogleFirstResult(query string) (string, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s", c.googleBase, url.QueryEscape(query))
	body, err := c.fetch(searchURL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("parsing search results: %w", err)
	}

	var result string
	doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok || !strings.HasPrefix(href, "/url?q=") {
			return true
		}
		target := strings.SplitN(strings.TrimPrefix(href, "/url?q="), "&", 2)[0]
		if strings.Contains(target, "google.com") {
			return true
		}
		if unescaped, err := url.QueryUnescape(target); err == nil {
			target = unescaped
		}
		result = target
		return false
	})

	if result == "" {
		return "", fmt.Errorf("no results for %q", query)
	}
	return result, nil
}

// YouTubeVideoURL returns a watch URL for a query. The first result is
// often a channel or ad slot, so the second distinct video is preferred
// when one exists.
func (c *Client) YouTubeVideoURL(query string) (string, error) {
	searchURL := fmt.Sprintf("%s/results?search_query=%s",
		c.youtubeBase, strings.ReplaceAll(url.QueryEscape(query), "%20", "+"))
	body, err := c.fetch(searchURL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("reading search results: %w", err)
	}

	seen := make(map[string]bool)
	var paths []string
	for _, m := range watchLink.FindAllStringSubmatch(string(data), -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			paths = append(paths, m[1])
		}
	}

	switch {
	case len(paths) >= 2:
		return c.youtubeBase + paths[1], nil
	case len(paths) == 1:
		return c.youtubeBase + paths[0], nil
	default:
		return "", fmt.Errorf("no videos for %q", query)
	}
}
