package crawler

// KeywordStats is the per-keyword breakdown of a crawl run. Fetched counts
// candidates after exact-URL collapsing, Deduped the batch surviving title
// dedup, Inserted the rows the store actually wrote.
type KeywordStats struct {
	Term     string `json:"term"`
	Fetched  int    `json:"fetched"`
	Deduped  int    `json:"deduped"`
	Inserted int    `json:"inserted"`
}

// Failure records one isolated keyword-source failure. Failures degrade that
// unit to zero items; they never abort the run.
type Failure struct {
	Keyword string `json:"keyword"`
	Source  string `json:"source"`
	Reason  string `json:"reason"`
}

// Result aggregates a whole crawl run.
type Result struct {
	NewArticles     int            `json:"new_articles"`
	ScannedKeywords int            `json:"scanned_keywords"`
	PerKeyword      []KeywordStats `json:"per_keyword"`
	Failures        []Failure      `json:"failures,omitempty"`
}
