package model

// Article is a single news item shown in the feed.
type Article struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Source    string   `json:"source"`
	URL       string   `json:"url"`
	Category  Category `json:"category"`
	Timestamp string   `json:"timestamp,omitempty"`
	ImageURL  string   `json:"imageUrl"`
}

// Citation points at a page the provider used to ground its answer.
type Citation struct {
	Title string `json:"title,omitempty"`
	URI   string `json:"uri"`
}

// FetchResult is the outcome of one successful fetch.
type FetchResult struct {
	Articles  []Article
	Citations []Citation
}
