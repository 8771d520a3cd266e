package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/newsclip/newsclip/app/database"
)

// Builder assembles digest reports from recently ingested articles.
type Builder struct {
	articles database.ArticleRepository
	now      func() time.Time
}

func NewBuilder(articles database.ArticleRepository) *Builder {
	return &Builder{
		articles: articles,
		now:      time.Now,
	}
}

// Build queries articles ingested within the trailing window, groups them by
// keyword, flags risk-term hits, and renders both digest bodies. Zero
// articles still produce a well-formed report.
func (b *Builder) Build(windowHours, maxItems int) (*Report, error) {
	since := b.now().Add(-time.Duration(windowHours) * time.Hour)

	rows, err := b.articles.GetRecent(since, maxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent articles: %w", err)
	}

	articles := make([]Article, 0, len(rows))
	for _, row := range rows {
		articles = append(articles, Article{
			Title:       row.Title,
			URL:         row.URL,
			Source:      row.Source,
			PublishedAt: row.PublishedAt,
			Keyword:     row.KeywordTerm,
		})
	}

	report := &Report{
		Headline:    fmt.Sprintf("Daily News Report (%dh)", windowHours),
		Subject:     fmt.Sprintf("Daily News Report (%d)", len(articles)),
		Total:       len(articles),
		WindowHours: windowHours,
		Groups:      groupByKeyword(articles),
	}

	terms := riskTerms()
	for _, article := range articles {
		if hits := detectRisk(article, terms); len(hits) > 0 {
			report.Risk = append(report.Risk, RiskEntry{Article: article, Hits: hits})
		}
	}

	report.Text = renderText(report)
	report.HTML = renderHTML(report)

	return report, nil
}

// groupByKeyword buckets articles by keyword term ("기타" for articles
// without one) and orders groups by descending size, first-seen order as the
// tie-break.
func groupByKeyword(articles []Article) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, article := range articles {
		key := article.Keyword
		if key == "" {
			key = fallbackGroup
		}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Keyword: key})
		}
		groups[i].Articles = append(groups[i].Articles, article)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Articles) > len(groups[j].Articles)
	})

	return groups
}
