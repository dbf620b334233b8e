package storygraph

import "time"

// Book is one item of a user's scraped want-to-read list.
type Book struct {
	// Link is the absolute URL of the book page, when one was found.
	Link string `json:"link"`
	// Title is the book title as displayed on the list.
	Title string `json:"title"`
	// Author is the primary author as displayed on the list.
	Author string `json:"author"`
}

// BookList is a user's want-to-read list together with its cache
// provenance.
type BookList struct {
	Username  string    `json:"username"`
	FetchedAt time.Time `json:"fetched_at"`
	// Cached reports whether the list was served from cache.
	Cached bool `json:"cached"`
	// Stale reports whether the list is a stale snapshot served
	// because a fresh retrieval failed.
	Stale bool   `json:"stale"`
	Books []Book `json:"books"`
}
