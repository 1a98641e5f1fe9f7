package wordcloud

import (
	"math"

	"github.com/wrobbinz/newspoint/internal/model"
)

// Normalize rescales sizes in place so the first (largest) entry becomes
// maxSize and the rest shrink proportionally. An empty slice or a zero
// reference size is returned untouched.
func Normalize(entries []model.CloudEntry, maxSize int) []model.CloudEntry {
	if len(entries) == 0 || entries[0].Size == 0 || maxSize <= 0 {
		return entries
	}

	ratio := float64(entries[0].Size) / float64(maxSize)
	for i := range entries {
		entries[i].Size = int(math.Round(float64(entries[i].Size) / ratio))
	}
	return entries
}
