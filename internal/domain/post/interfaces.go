package post

import "context"

// RelationRepository is the slice of the favorite store the feed service needs.
// Implementations return favorite.ErrAlreadyFavorited / favorite.ErrNotFavorited
// for the duplicate and missing-relation cases.
type RelationRepository interface {
	Insert(ctx context.Context, postID, userID string) error
	DeleteMatching(ctx context.Context, postID, userID string) error
	PostIDsByUser(ctx context.Context, userID string) ([]string, error)
}

// CommentPurger removes a deleted post's comments. Optional collaborator.
type CommentPurger interface {
	DeleteByPost(ctx context.Context, postID string) error
}
