package domain

// Program est une série de podcasts (un terme de taxonomie côté WordPress).
type Program struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	EpisodeCount int    `json:"episodeCount,omitempty"`
}

// Image est l'image mise en avant d'un épisode.
// Width/Height viennent du flux distant et ne survivent pas au cache local.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Episode est un élément audio publiable.
//
// ProgramIDs est une liste: un épisode peut appartenir à plusieurs programmes
// côté distant. Le cache local ne conserve que la première appartenance
// (colonne program_id unique), voir adapters/sqlite/rows.go.
type Episode struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Content    string  `json:"content,omitempty"`
	ArchiveURL string  `json:"archiveUrl,omitempty"`
	Images     []Image `json:"images,omitempty"`
	Published  string  `json:"published"`
	Duration   string  `json:"duration,omitempty"`
	ProgramIDs []int64 `json:"programIds"`
}
