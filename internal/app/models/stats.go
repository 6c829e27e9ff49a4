package models

// Stats counts stored records
type Stats struct {
	URLs      int `json:"urls"`
	Users     int `json:"users"`
	Exercises int `json:"exercises"`
}

// Snapshot is the whole in-memory state as it is written to the storage file
type Snapshot struct {
	ShortURLs []ShortURL `json:"short_urls"`
	Users     []User     `json:"users"`
	Exercises []Exercise `json:"exercises"`
}
