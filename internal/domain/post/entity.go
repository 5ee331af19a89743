package post

import (
	"strings"
	"time"
)

// Post is a user-authored feed entry. The author fields are a snapshot of the
// identity at creation time. Favorited is derived per request by joining
// against the requesting user's favorite relations; it is never persisted and
// never trusted from input.
type Post struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title          string    `json:"title" gorm:"not null"`
	Body           string    `json:"body" gorm:"type:text"`
	AuthorID       string    `json:"author_id" gorm:"type:varchar(36);not null;index"`
	AuthorName     string    `json:"author_name" gorm:"not null"`
	AuthorImageURL string    `json:"author_image_url"`
	ImageURL       string    `json:"image_url"` // empty means no image
	CreatedAt      time.Time `json:"created_at"`
	Favorited      bool      `json:"favorited" gorm:"-"`
}

func (Post) TableName() string { return "posts" }

// Matches reports whether the post contains the query as a case-insensitive
// substring of its title, body or author name.
func (p *Post) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Body), q) ||
		strings.Contains(strings.ToLower(p.AuthorName), q)
}

// EditableFields is the transient input to post creation. The raw image
// payload, when present, is handed to the asset store and never persisted.
type EditableFields struct {
	Title            string
	Body             string
	Image            []byte
	ImageContentType string
}

// FeedFilter selects one of the three feed shapes: the zero value is the full
// feed, AuthorID restricts to one author, Favorites to the requesting user's
// favorited posts.
type FeedFilter struct {
	AuthorID  string
	Favorites bool
}

// Query is the content-repository filter. IDsSet distinguishes "no id filter"
// from "filter on an explicitly empty set".
type Query struct {
	AuthorID string
	IDs      []string
	IDsSet   bool
}
