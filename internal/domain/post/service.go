package post

import (
	"context"
	"errors"
	"fmt"
	"log"

	"postfeed/internal/domain/asset"
	"postfeed/internal/domain/auth"
	"postfeed/internal/domain/favorite"
)

// Service composes the content and relation stores into favorite-annotated
// feeds and owns the mutation protocols for create, delete and (un)favorite.
// It holds no mutable state beyond the store handles, so one instance is safe
// to share across feed views.
type Service struct {
	posts     ContentRepository
	relations RelationRepository
	assets    asset.Store
	comments  CommentPurger // may be nil
}

func NewService(posts ContentRepository, relations RelationRepository, assets asset.Store, comments CommentPurger) *Service {
	return &Service{
		posts:     posts,
		relations: relations,
		assets:    assets,
		comments:  comments,
	}
}

// Fetch returns the feed selected by filter, newest first, with each post's
// Favorited flag computed for the requesting user. For the favorites shape the
// user's relation set is resolved first and an empty set short-circuits to an
// empty feed without a content query.
func (s *Service) Fetch(ctx context.Context, filter FeedFilter, user auth.Identity) ([]Post, error) {
	if filter.Favorites {
		ids, err := s.relations.PostIDsByUser(ctx, user.ID)
		if err != nil {
			return nil, storeFailure("fetch favorites", err)
		}
		if len(ids) == 0 {
			return []Post{}, nil
		}
		posts, err := s.posts.FindOrdered(ctx, Query{IDs: ids, IDsSet: true})
		if err != nil {
			return nil, storeFailure("fetch favorites", err)
		}
		// Relations referencing deleted posts simply yield no row here.
		annotate(posts, ids)
		return posts, nil
	}

	// The posts query and the favorite-id set are independent reads; issue
	// them together and wait for both before annotating.
	type relResult struct {
		ids []string
		err error
	}
	relCh := make(chan relResult, 1)
	go func() {
		ids, err := s.relations.PostIDsByUser(ctx, user.ID)
		relCh <- relResult{ids: ids, err: err}
	}()

	posts, postsErr := s.posts.FindOrdered(ctx, Query{AuthorID: filter.AuthorID})
	rel := <-relCh

	if postsErr != nil {
		return nil, storeFailure("fetch posts", postsErr)
	}
	if rel.err != nil {
		return nil, storeFailure("fetch favorite ids", rel.err)
	}

	annotate(posts, rel.ids)
	return posts, nil
}

// Get resolves a single post by id without favorite annotation; mutation
// endpoints use it to check authorship against current data.
func (s *Service) Get(ctx context.Context, id string) (*Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, err
		}
		return nil, storeFailure("get post", err)
	}
	return p, nil
}

// Search filters a fetched feed by case-insensitive substring match. No
// ranking.
func (s *Service) Search(ctx context.Context, filter FeedFilter, query string, user auth.Identity) ([]Post, error) {
	posts, err := s.Fetch(ctx, filter, user)
	if err != nil {
		return nil, err
	}
	matched := []Post{}
	for _, p := range posts {
		if p.Matches(query) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Create persists the draft as a new post authored by author. The image, when
// present, is attached in a second phase keyed by the new post id; if that
// phase fails the post stays persisted without an image and the error is
// returned as an ErrImageUpload warning alongside the post.
func (s *Service) Create(ctx context.Context, draft EditableFields, author auth.Identity) (*Post, error) {
	p := &Post{
		Title:          draft.Title,
		Body:           draft.Body,
		AuthorID:       author.ID,
		AuthorName:     author.Name,
		AuthorImageURL: author.ImageURL,
	}

	if err := s.posts.Insert(ctx, p); err != nil {
		return nil, storeFailure("create post", err)
	}

	if len(draft.Image) == 0 {
		return p, nil
	}

	url, err := s.assets.Create(ctx, draft.Image, draft.ImageContentType, p.ID)
	if err != nil {
		log.Printf("image_upload_failed post_id=%s error=%q", p.ID, err)
		return p, fmt.Errorf("%w: %v", ErrImageUpload, err)
	}

	if err := s.posts.UpdateImageURL(ctx, p.ID, url); err != nil {
		log.Printf("image_attach_failed post_id=%s error=%q", p.ID, err)
		return p, fmt.Errorf("%w: %v", ErrImageUpload, err)
	}

	p.ImageURL = url
	return p, nil
}

// Delete removes the post if the requesting user authored it. The content row
// is deleted first and is the source of truth for "post no longer exists";
// comment and asset cleanup afterwards are best effort. An asset-cleanup
// failure is returned as an ErrAssetCleanup warning, not rolled back.
func (s *Service) Delete(ctx context.Context, p *Post, user auth.Identity) error {
	if !s.CanDelete(p, user) {
		return ErrNotPermitted
	}

	if err := s.posts.DeleteByID(ctx, p.ID); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return err
		}
		return storeFailure("delete post", err)
	}

	if s.comments != nil {
		if err := s.comments.DeleteByPost(ctx, p.ID); err != nil {
			log.Printf("comment_cleanup_failed post_id=%s error=%q", p.ID, err)
		}
	}

	if p.ImageURL == "" {
		return nil
	}
	if err := s.assets.Delete(ctx, p.ID); err != nil && !errors.Is(err, asset.ErrNotFound) {
		log.Printf("asset_cleanup_failed post_id=%s error=%q", p.ID, err)
		return fmt.Errorf("%w: %v", ErrAssetCleanup, err)
	}
	return nil
}

// Favorite marks the post as a favorite of user. A duplicate favorite is
// surfaced as favorite.ErrAlreadyFavorited and never retried here.
func (s *Service) Favorite(ctx context.Context, p *Post, user auth.Identity) error {
	err := s.relations.Insert(ctx, p.ID, user.ID)
	if err == nil || errors.Is(err, favorite.ErrAlreadyFavorited) {
		return err
	}
	return storeFailure("favorite", err)
}

// Unfavorite removes the relation. A missing relation is surfaced as
// favorite.ErrNotFavorited; a second unfavorite is therefore a no-op at the
// store.
func (s *Service) Unfavorite(ctx context.Context, p *Post, user auth.Identity) error {
	err := s.relations.DeleteMatching(ctx, p.ID, user.ID)
	if err == nil || errors.Is(err, favorite.ErrNotFavorited) {
		return err
	}
	return storeFailure("unfavorite", err)
}

// CanDelete reports whether user may delete p. Same rule as Delete, exposed
// so callers can pre-filter affordances without attempting the mutation.
func (s *Service) CanDelete(p *Post, user auth.Identity) bool {
	return user.ID == p.AuthorID
}

func annotate(posts []Post, favoriteIDs []string) {
	set := make(map[string]struct{}, len(favoriteIDs))
	for _, id := range favoriteIDs {
		set[id] = struct{}{}
	}
	for i := range posts {
		_, posts[i].Favorited = set[posts[i].ID]
	}
}

// storeFailure wraps transient store errors so callers can tell a retryable
// outage apart from authorization and conflict outcomes.
func storeFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}
