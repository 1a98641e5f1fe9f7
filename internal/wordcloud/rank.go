package wordcloud

import (
	"sort"

	"github.com/wrobbinz/newspoint/internal/model"
)

// Stock cloud settings: entry count, count-to-size multiplier and the size of
// the largest entry after normalization.
const (
	DefaultCloudSize = 200
	DefaultSizeScale = 2
	DefaultMaxSize   = 250
)

// Rank turns term counts into cloud entries sized count*scale, ordered by size
// descending and truncated to limit. Ties keep their input order. IDs are
// assigned 1..n in the final order.
func Rank(counts []TermCount, scale, limit int) []model.CloudEntry {
	entries := make([]model.CloudEntry, 0, len(counts))
	for _, c := range counts {
		entries = append(entries, model.CloudEntry{
			Text: c.Term,
			Size: c.Count * scale,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Size > entries[j].Size
	})

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	for i := range entries {
		entries[i].ID = i + 1
	}
	return entries
}
