package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"jobpilot/internal/logger"
)

const (
	userAgent    = "Mozilla/5.0 JobPilotAI/1.0"
	acceptHeader = "text/html,application/xhtml+xml"

	maxPageBytes        = 3 << 20
	maxDescriptionBytes = 2 << 20
	minDirectHTMLLength = 1000

	directFetchTimeout      = 20 * time.Second
	descriptionFetchTimeout = 15 * time.Second
	proxyFetchTimeout       = 25 * time.Second

	defaultProxyBase = "https://r.jina.ai/http://"
)

var urlSchemeRe = regexp.MustCompile(`(?i)^https?://`)

// Fetcher retrieves job pages. It tries the link directly first and falls
// back to the r.jina.ai readability proxy when the direct response is an
// error or too short to be a real page (bot walls, empty JS shells).
type Fetcher struct {
	direct      *http.Client
	description *http.Client
	proxy       *http.Client
	proxyBase   string
	minDirect   int
	log         *logger.Logger
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		direct:      &http.Client{Timeout: directFetchTimeout},
		description: &http.Client{Timeout: descriptionFetchTimeout},
		proxy:       &http.Client{Timeout: proxyFetchTimeout},
		proxyBase:   defaultProxyBase,
		minDirect:   minDirectHTMLLength,
		log:         logger.New("Fetcher"),
	}
}

// NewFetcherWithProxyBase overrides the readability proxy endpoint.
func NewFetcherWithProxyBase(proxyBase string, minDirect int) *Fetcher {
	f := NewFetcher()
	f.proxyBase = proxyBase
	f.minDirect = minDirect
	return f
}

// FetchPage returns the page HTML plus which retrieval path produced it.
func (f *Fetcher) FetchPage(ctx context.Context, jobLink string) (FetchedPage, error) {
	html, err := f.get(ctx, f.direct, jobLink, maxPageBytes)
	if err == nil && len(html) > f.minDirect {
		return FetchedPage{HTML: html, Source: "direct"}, nil
	}
	if err != nil {
		f.log.LogDebugf("direct fetch failed for %s: %v", jobLink, err)
	}

	html, err = f.get(ctx, f.proxy, f.proxyURL(jobLink), maxPageBytes)
	if err != nil {
		return FetchedPage{}, fmt.Errorf("readability proxy fetch: %w", err)
	}
	return FetchedPage{HTML: html, Source: "proxy-fallback"}, nil
}

// proxyURL builds the readability proxy request. The proxy wants the
// target scheme stripped and re-added after its own http:// prefix.
func (f *Fetcher) proxyURL(jobLink string) string {
	return f.proxyBase + urlSchemeRe.ReplaceAllString(jobLink, "")
}

func (f *Fetcher) get(ctx context.Context, client *http.Client, rawURL string, maxBytes int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	res, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return "", fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > maxBytes {
		return "", fmt.Errorf("response exceeds %d bytes", maxBytes)
	}
	return string(body), nil
}
