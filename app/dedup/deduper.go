package dedup

// Candidate is the projection of an article the pipeline needs for
// deduplication. Index points back into the caller's batch.
type Candidate struct {
	Title string
	URL   string
	Index int
}

// DefaultThreshold is the Jaccard similarity at or above which two titles
// are considered the same story.
const DefaultThreshold = 0.82

// Deduper removes duplicates in two stages: exact canonical URL, then fuzzy
// title similarity against every previously kept item. Earliest-first input
// order is the tie-break, so results are deterministic for a given batch.
type Deduper struct {
	threshold float64
}

func NewDeduper(threshold float64) *Deduper {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Deduper{threshold: threshold}
}

func (d *Deduper) Run(items []Candidate) []Candidate {
	return d.dedupeByTitle(UniqueByURL(items))
}

// UniqueByURL collapses items sharing a canonical URL, keeping the first
// occurrence. Items with an empty URL are dropped.
func UniqueByURL(items []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(items))
	result := make([]Candidate, 0, len(items))

	for _, item := range items {
		if item.URL == "" {
			continue
		}
		if _, ok := seen[item.URL]; ok {
			continue
		}
		seen[item.URL] = struct{}{}
		result = append(result, item)
	}

	return result
}

// dedupeByTitle scans in order, comparing each title against the accumulated
// kept set. Quadratic in the kept-set size, which is fine for the bounded
// per-keyword batches this pipeline sees.
func (d *Deduper) dedupeByTitle(items []Candidate) []Candidate {
	kept := make([]Candidate, 0, len(items))
	tokenSets := make([]map[string]struct{}, 0, len(items))

	for _, item := range items {
		tokens := Tokenize(item.Title)

		isDuplicate := false
		for _, previous := range tokenSets {
			if Jaccard(tokens, previous) >= d.threshold {
				isDuplicate = true
				break
			}
		}

		if !isDuplicate {
			kept = append(kept, item)
			tokenSets = append(tokenSets, tokens)
		}
	}

	return kept
}
