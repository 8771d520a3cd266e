package report

import (
	"strings"

	"github.com/newsclip/newsclip/app/cfg"
)

// defaultRiskTerms is the built-in list of domain risk phrases, matched when
// no override is configured.
var defaultRiskTerms = []string{
	"리콜",
	"불매",
	"논란",
	"소송",
	"위기",
	"불법",
	"저작권",
	"권리침해",
	"허위",
	"위반",
	"처벌",
	"징계",
	"환불",
	"피해",
	"해킹",
	"유출",
	"사기",
}

// riskTerms returns the configured override (comma-separated) when present,
// falling back to the built-in list when the override is empty or yields no
// usable terms.
func riskTerms() []string {
	override := cfg.Get().RiskTerms
	if override == "" {
		return defaultRiskTerms
	}

	var terms []string
	for _, term := range strings.Split(override, ",") {
		term = strings.TrimSpace(term)
		if term != "" {
			terms = append(terms, term)
		}
	}

	if len(terms) == 0 {
		return defaultRiskTerms
	}
	return terms
}

// detectRisk returns the risk terms hitting an article, matching the title
// plus keyword text case-insensitively.
func detectRisk(article Article, terms []string) []string {
	text := strings.ToLower(article.Title + " " + article.Keyword)

	var hits []string
	for _, term := range terms {
		if strings.Contains(text, strings.ToLower(term)) {
			hits = append(hits, term)
		}
	}

	return hits
}
