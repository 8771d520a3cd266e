package report

import (
	"fmt"
	"strings"
	"time"
)

// Rendering is a pure step over already-escaped values, so both bodies are a
// deterministic function of the assembled report.

func renderText(r *Report) string {
	var b strings.Builder

	b.WriteString(r.Headline)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("총 %d건", r.Total))
	b.WriteString("\n\n")

	if len(r.Risk) > 0 {
		b.WriteString("[리스크 기사]\n")
		for _, entry := range r.Risk {
			article := entry.Article
			keyword := ""
			if article.Keyword != "" {
				keyword = " / " + article.Keyword
			}
			b.WriteString(fmt.Sprintf("- %s (%s%s) %s\n  %s\n  키워드: %s\n",
				article.Title, article.Source, keyword, formatDate(article.PublishedAt),
				article.URL, strings.Join(entry.Hits, ", ")))
		}
		b.WriteString("\n")
	}

	for _, group := range r.Groups {
		b.WriteString(fmt.Sprintf("[%s] (%d)\n", group.Keyword, len(group.Articles)))
		for _, article := range group.Articles {
			b.WriteString(fmt.Sprintf("- %s (%s) %s\n  %s\n",
				article.Title, article.Source, formatDate(article.PublishedAt), article.URL))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderHTML(r *Report) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family:Arial,sans-serif;max-width:680px;margin:0 auto;color:#0f172a;">` + "\n")
	b.WriteString(fmt.Sprintf("  <h2>%s</h2>\n", escapeHTML(r.Headline)))
	b.WriteString(fmt.Sprintf("  <p>총 %d건</p>\n", r.Total))

	if len(r.Risk) > 0 {
		b.WriteString(`  <section style="margin:16px 0;padding:12px;border:1px solid #fecaca;background:#fff1f2;">` + "\n")
		b.WriteString("    <h3>리스크 기사 감지</h3>\n")
		for _, entry := range r.Risk {
			writeHTMLArticle(&b, entry.Article)
			b.WriteString(fmt.Sprintf("    <div>키워드: %s</div>\n", escapeHTML(strings.Join(entry.Hits, ", "))))
		}
		b.WriteString("  </section>\n")
	}

	for _, group := range r.Groups {
		b.WriteString(`  <section style="margin:16px 0;">` + "\n")
		b.WriteString(fmt.Sprintf("    <h3>%s (%d)</h3>\n", escapeHTML(group.Keyword), len(group.Articles)))
		for _, article := range group.Articles {
			writeHTMLArticle(&b, article)
		}
		b.WriteString("  </section>\n")
	}

	b.WriteString("</div>\n")

	return b.String()
}

func writeHTMLArticle(b *strings.Builder, article Article) {
	keyword := ""
	if article.Keyword != "" {
		keyword = " · " + escapeHTML(article.Keyword)
	}
	b.WriteString(fmt.Sprintf("    <div><a href=\"%s\">%s</a><div>%s%s · %s</div></div>\n",
		escapeHTML(article.URL),
		escapeHTML(article.Title),
		escapeHTML(article.Source),
		keyword,
		escapeHTML(formatDate(article.PublishedAt))))
}

// escapeHTML escapes the characters that would let article-sourced text
// inject markup into the rich body.
func escapeHTML(value string) string {
	value = strings.ReplaceAll(value, "&", "&amp;")
	value = strings.ReplaceAll(value, "<", "&lt;")
	value = strings.ReplaceAll(value, ">", "&gt;")
	value = strings.ReplaceAll(value, `"`, "&quot;")
	return value
}

func formatDate(value time.Time) string {
	return value.In(time.Local).Format("2006-01-02 15:04")
}
