package domain

import "time"

// Difficulty classifies how approachable an issue is for a new contributor.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyUnknown      Difficulty = "unknown"
)

// Issue is one unit of open-source work from the catalog. Issues are
// immutable once fetched; a catalog refresh replaces them wholesale.
type Issue struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Repo        string     `json:"repo"`
	Difficulty  Difficulty `json:"difficulty"`
	Comments    int        `json:"comments"`
	URL         string     `json:"url"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
