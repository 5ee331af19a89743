package comment

import "time"

// Comment is a reply attached to a post. Author fields are an identity
// snapshot taken when the comment is written.
type Comment struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PostID         string    `json:"post_id" gorm:"type:varchar(36);not null;index"`
	AuthorID       string    `json:"author_id" gorm:"type:varchar(36);not null"`
	AuthorName     string    `json:"author_name" gorm:"not null"`
	AuthorImageURL string    `json:"author_image_url"`
	Body           string    `json:"body" gorm:"type:text;not null"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Comment) TableName() string { return "comments" }
