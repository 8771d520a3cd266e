package sources

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/newsclip/newsclip/app/cfg"
)

const googleNewsEndpoint = "https://news.google.com/rss/search"

// GoogleNewsClient queries the Google News RSS search feed for a keyword.
// The feed needs no credentials, so this source is never unconfigured.
type GoogleNewsClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	parser     *gofeed.Parser
	endpoint   string
}

var _ Source = (*GoogleNewsClient)(nil)

func NewGoogleNewsClient(httpClient *http.Client) *GoogleNewsClient {
	return &GoogleNewsClient{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(2), 2),
		parser:     gofeed.NewParser(),
		endpoint:   googleNewsEndpoint,
	}
}

func (c *GoogleNewsClient) Name() string {
	return SourceGoogle
}

func (c *GoogleNewsClient) Fetch(ctx context.Context, keyword string) ([]RawItem, error) {
	conf := cfg.Get()

	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(conf.SourceTimeout)*time.Second)
	defer cancel()

	if err := c.limiter.Wait(timeoutCtx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("q", keyword)
	params.Set("hl", conf.GoogleNewsHL)
	params.Set("gl", conf.GoogleNewsGL)
	params.Set("ceid", conf.GoogleNewsCEID)

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", conf.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from Google News: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google news rss error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	feed, err := c.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse google news feed: %w", err)
	}

	items := make([]RawItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		raw := RawItem{
			Title:       stripTags(item.Title),
			URL:         item.Link,
			Source:      SourceGoogle,
			PublishedAt: item.PublishedParsed,
		}

		// A broken item is dropped on its own; the rest of the batch survives.
		if raw.Title == "" || raw.URL == "" {
			continue
		}

		items = append(items, raw)
		if len(items) >= conf.MaxFetch {
			break
		}
	}

	return items, nil
}
