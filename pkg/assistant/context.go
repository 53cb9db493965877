package assistant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// rankCandidates applies the owner boost, re-sorts, enforces the owner
// guarantee and truncates to topK. Input order must be the store's ranking
// (descending raw score, insertion order on ties).
func rankCandidates(candidates []*types.SearchResult, ownerID string, boost float32, topK int) []*types.SearchResult {
	if len(candidates) == 0 || topK <= 0 {
		return nil
	}

	ranked := make([]*types.SearchResult, len(candidates))
	for i, c := range candidates {
		r := *c
		if isOwnerPersonal(&r, ownerID) {
			r.Score *= boost
			r.OwnerMatch = true
		} else {
			r.OwnerMatch = false
		}
		ranked[i] = &r
	}

	// Stable sort keeps the store's deterministic ordering on equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > topK {
		kept := ranked[:topK]
		if !hasOwnerMatch(kept) {
			if best := firstOwnerMatch(ranked[topK:]); best >= 0 {
				kept[topK-1] = ranked[topK+best]
			}
		}
		ranked = kept
	}
	return ranked
}

func isOwnerPersonal(r *types.SearchResult, ownerID string) bool {
	return ownerID != "" && r.OwnerID == ownerID && r.SourceKind.Personal()
}

func hasOwnerMatch(results []*types.SearchResult) bool {
	for _, r := range results {
		if r.OwnerMatch {
			return true
		}
	}
	return false
}

func firstOwnerMatch(results []*types.SearchResult) int {
	for i, r := range results {
		if r.OwnerMatch {
			return i
		}
	}
	return -1
}

// buildContextBlock renders ranked chunks into the prompt context section.
// Owner-matched chunks come first and carry a marker so the model can
// distinguish the farmer's own records from general knowledge.
func buildContextBlock(results []*types.SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	ordered := make([]*types.SearchResult, 0, len(results))
	for _, r := range results {
		if r.OwnerMatch {
			ordered = append(ordered, r)
		}
	}
	for _, r := range results {
		if !r.OwnerMatch {
			ordered = append(ordered, r)
		}
	}

	var b strings.Builder
	for _, r := range ordered {
		if r.OwnerMatch {
			b.WriteString("[Your farm] ")
		}
		fmt.Fprintf(&b, "%s (relevance %.2f):\n%s\n\n",
			r.Metadata.TitleOrDefault(), r.Score, r.Metadata.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}

// sourceTitles lists the titles backing an answer, in ranked order
func sourceTitles(results []*types.SearchResult) []string {
	titles := make([]string, 0, len(results))
	for _, r := range results {
		titles = append(titles, r.Metadata.TitleOrDefault())
	}
	return titles
}
