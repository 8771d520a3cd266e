package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/newsclip/newsclip/app/cfg"
)

const (
	naverEndpoint = "https://openapi.naver.com/v1/search/news.json"

	// The Naver search API rejects start offsets beyond 1000.
	naverStartCeiling = 1000
)

type naverItem struct {
	Title        string `json:"title"`
	Link         string `json:"link"`
	OriginalLink string `json:"originallink"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}

type naverResponse struct {
	Total   int         `json:"total"`
	Start   int         `json:"start"`
	Display int         `json:"display"`
	Items   []naverItem `json:"items"`
}

// NaverClient queries the Naver open API news search endpoint. Credentials
// come from configuration; when either is missing the source reports itself
// unconfigured instead of failing the crawl.
type NaverClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	endpoint   string
}

var _ Source = (*NaverClient)(nil)

func NewNaverClient(httpClient *http.Client) *NaverClient {
	return &NaverClient{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(5), 5),
		endpoint:   naverEndpoint,
	}
}

func (c *NaverClient) Name() string {
	return SourceNaver
}

func (c *NaverClient) Fetch(ctx context.Context, keyword string) ([]RawItem, error) {
	conf := cfg.Get()
	if conf.NaverClientID == "" || conf.NaverClientSecret == "" {
		return nil, ErrUnconfigured
	}

	pageSize := conf.PageSize
	maxFetch := conf.MaxFetch

	var items []RawItem
	for start := 1; start <= naverStartCeiling; start += pageSize {
		page, err := c.fetchPage(ctx, keyword, start, pageSize)
		if err != nil {
			return nil, err
		}

		for _, item := range page {
			raw := c.normalizeItem(item)
			if raw.Title == "" || raw.URL == "" {
				continue
			}
			items = append(items, raw)
		}

		if len(items) >= maxFetch {
			items = items[:maxFetch]
			break
		}
		if len(page) < pageSize {
			break
		}
	}

	return items, nil
}

func (c *NaverClient) fetchPage(ctx context.Context, keyword string, start, display int) ([]naverItem, error) {
	conf := cfg.Get()

	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(conf.SourceTimeout)*time.Second)
	defer cancel()

	if err := c.limiter.Wait(timeoutCtx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("query", keyword)
	params.Set("display", strconv.Itoa(display))
	params.Set("start", strconv.Itoa(start))
	params.Set("sort", "date")

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Naver-Client-Id", conf.NaverClientID)
	req.Header.Set("X-Naver-Client-Secret", conf.NaverClientSecret)
	req.Header.Set("User-Agent", conf.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from Naver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("naver api error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var parsed naverResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse naver response: %w", err)
	}

	return parsed.Items, nil
}

func (c *NaverClient) normalizeItem(item naverItem) RawItem {
	raw := RawItem{
		Title:  stripTags(item.Title),
		Source: SourceNaver,
	}

	// The original article URL is preferred over Naver's redirect link.
	if item.OriginalLink != "" {
		raw.URL = item.OriginalLink
	} else {
		raw.URL = item.Link
	}

	if item.PubDate != "" {
		if parsed, err := time.Parse(time.RFC1123Z, item.PubDate); err == nil {
			raw.PublishedAt = &parsed
		}
	}

	return raw
}
