package comment

import (
	"context"
	"errors"
	"fmt"

	"postfeed/internal/domain/auth"
	"postfeed/internal/domain/post"
)

type postReader interface {
	Get(ctx context.Context, id string) (*post.Post, error)
}

// Service manages comment threads under posts.
type Service struct {
	comments Repository
	posts    postReader
}

func NewService(comments Repository, posts postReader) *Service {
	return &Service{comments: comments, posts: posts}
}

func (s *Service) ListByPost(ctx context.Context, postID string) ([]Comment, error) {
	if _, err := s.posts.Get(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

func (s *Service) Add(ctx context.Context, postID, body string, author auth.Identity) (*Comment, error) {
	if _, err := s.posts.Get(ctx, postID); err != nil {
		return nil, err
	}

	c := &Comment{
		PostID:         postID,
		AuthorID:       author.ID,
		AuthorName:     author.Name,
		AuthorImageURL: author.ImageURL,
		Body:           body,
	}
	if err := s.comments.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return c, nil
}

// Delete removes a comment. Allowed to the comment's author and to the author
// of the post it sits under.
func (s *Service) Delete(ctx context.Context, commentID string, user auth.Identity) error {
	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	p, err := s.posts.Get(ctx, c.PostID)
	if err != nil && !errors.Is(err, post.ErrPostNotFound) {
		return err
	}

	postAuthorID := ""
	if p != nil {
		postAuthorID = p.AuthorID
	}
	if !s.CanDelete(c, postAuthorID, user) {
		return ErrNotPermitted
	}

	return s.comments.DeleteByID(ctx, commentID)
}

// CanDelete mirrors the Delete authorization rule as a pure predicate.
func (s *Service) CanDelete(c *Comment, postAuthorID string, user auth.Identity) bool {
	return user.ID == c.AuthorID || (postAuthorID != "" && user.ID == postAuthorID)
}
