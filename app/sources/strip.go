package sources

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// stripTags reduces a markup fragment to plain text: tags removed, entities
// unescaped, whitespace collapsed. Provider titles routinely arrive with <b>
// highlighting and &quot; entities.
func stripTags(value string) string {
	if value == "" {
		return ""
	}

	text := value
	if strings.ContainsAny(value, "<>") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(value))
		if err == nil {
			text = doc.Text()
		}
	}

	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}
