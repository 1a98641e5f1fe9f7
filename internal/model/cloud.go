package model

// CloudEntry is one ranked term of a word cloud.
type CloudEntry struct {
	ID   int
	Text string
	Size int
}

// NewsRow is a persisted cloud entry as stored in the news table.
type NewsRow struct {
	ID   int
	Word string
	Size int
}
