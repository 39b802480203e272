package model

import "time"

// Post is an immutable snapshot of a single submission fetched from the
// content source. Comments, when present, are top-level entries only.
type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"created_at"`
	Score      int       `json:"score"`
	URL        string    `json:"url"`
	Body       string    `json:"body"`
	Feed       string    `json:"feed"`
	IsGallery  bool      `json:"is_gallery"`
	GalleryIDs []string  `json:"gallery_ids,omitempty"`
	Comments   []Comment `json:"comments,omitempty"`
}

// Comment is one top-level discussion entry on a post.
type Comment struct {
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Score     int       `json:"score"`
	Pinned    bool      `json:"pinned"`
}

// Outcome reports what happened while staging one post's bundle. All
// failure is encoded here; writers never return errors for a single post.
type Outcome struct {
	Success bool     `json:"success"`
	Files   []string `json:"files"`
	Errors  []string `json:"errors"`
}
