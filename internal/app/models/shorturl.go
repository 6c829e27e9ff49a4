package models

// ShortURL maps an original URL to its sequential handle
type ShortURL struct {
	Handle      int    `json:"short_url"`
	OriginalURL string `json:"original_url"`
}
