package favorite

import "time"

// Favorite links a user to a post they marked as favorite. At most one row may
// exist per (post_id, user_id) pair; the unique index is the concurrency
// control for duplicate favorites.
type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);not null;index;uniqueIndex:idx_post_user"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;index;uniqueIndex:idx_post_user"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Favorite) TableName() string { return "favorites" }
