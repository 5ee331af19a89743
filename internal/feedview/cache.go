// Package feedview holds a caller-side snapshot of one feed and applies
// optimistic mutations against it before the backing store confirms them. One
// Cache serves one feed view with a single logical caller; the feed service it
// talks to may be shared across many caches.
package feedview

import (
	"context"
	"errors"
	"sync/atomic"

	"postfeed/internal/domain/auth"
	"postfeed/internal/domain/post"
)

// Feed is the slice of the feed service the cache drives.
type Feed interface {
	Fetch(ctx context.Context, filter post.FeedFilter, user auth.Identity) ([]post.Post, error)
	Create(ctx context.Context, draft post.EditableFields, author auth.Identity) (*post.Post, error)
	Delete(ctx context.Context, p *post.Post, user auth.Identity) error
	Favorite(ctx context.Context, p *post.Post, user auth.Identity) error
	Unfavorite(ctx context.Context, p *post.Post, user auth.Identity) error
	CanDelete(p *post.Post, user auth.Identity) bool
}

var ErrNotPermitted = errors.New("not permitted")

// Cache binds a filter and a user to an ordered post snapshot. Mutations are
// applied to the snapshot optimistically and rolled back individually when the
// store rejects them; the snapshot never drifts from the last confirmed store
// response in any other way.
type Cache struct {
	feed   Feed
	filter post.FeedFilter
	user   auth.Identity

	posts      []post.Post
	loading    bool
	lastErr    error
	generation atomic.Uint64
	listeners  []func()
}

func New(feed Feed, filter post.FeedFilter, user auth.Identity) *Cache {
	return &Cache{
		feed:   feed,
		filter: filter,
		user:   user,
		posts:  []post.Post{},
	}
}

// Subscribe registers a hook invoked after every snapshot change. The
// presentation layer re-reads Posts/Loading/LastErr from inside the hook.
func (c *Cache) Subscribe(fn func()) {
	c.listeners = append(c.listeners, fn)
}

// Posts returns a copy of the current snapshot.
func (c *Cache) Posts() []post.Post {
	out := make([]post.Post, len(c.posts))
	copy(out, c.posts)
	return out
}

func (c *Cache) Loading() bool { return c.loading }

// LastErr is the most recent surfaced error, cleared by the next successful
// refresh.
func (c *Cache) LastErr() error { return c.lastErr }

// Refresh replaces the snapshot with a fresh fetch. On failure the prior
// snapshot stays untouched and the error is recorded instead of thrown at the
// view. A refresh superseded by a newer one discards its result so a stale
// fetch never lands over fresher data.
func (c *Cache) Refresh(ctx context.Context) error {
	gen := c.generation.Add(1)
	c.loading = true
	c.notify()

	posts, err := c.feed.Fetch(ctx, c.filter, c.user)

	if c.generation.Load() != gen {
		return nil // superseded, drop the result
	}

	c.loading = false
	if err != nil {
		c.lastErr = err
		c.notify()
		return err
	}

	c.lastErr = nil
	c.posts = posts
	c.notify()
	return nil
}

// Submit creates a post from the draft and prepends it, which keeps the
// snapshot in timestamp-descending order since the creation time is now. An
// image-upload warning still prepends the (imageless) post and is passed on.
func (c *Cache) Submit(ctx context.Context, draft post.EditableFields) error {
	created, err := c.feed.Create(ctx, draft, c.user)
	if err != nil && !errors.Is(err, post.ErrImageUpload) {
		c.lastErr = err
		c.notify()
		return err
	}

	c.posts = append([]post.Post{*created}, c.posts...)
	c.notify()
	return err
}

// RequestDelete removes the post after the store confirms. The authorization
// predicate runs locally first so a forbidden delete costs no round-trip.
func (c *Cache) RequestDelete(ctx context.Context, p *post.Post) error {
	if !c.feed.CanDelete(p, c.user) {
		return ErrNotPermitted
	}

	err := c.feed.Delete(ctx, p, c.user)
	if err != nil && !deleteCommitted(err) {
		c.lastErr = err
		c.notify()
		return err
	}

	c.remove(p.ID)
	c.notify()
	return err
}

// ToggleFavorite flips the post's favorite flag in the snapshot before the
// store call, then confirms it with favorite/unfavorite chosen by the
// pre-toggle state. On failure exactly that flip is reverted; neighbouring
// optimistic edits are left alone, never clobbered by a blanket refresh.
func (c *Cache) ToggleFavorite(ctx context.Context, p *post.Post) error {
	i := c.indexOf(p.ID)
	if i < 0 {
		return post.ErrPostNotFound
	}

	wasFavorited := c.posts[i].Favorited
	c.posts[i].Favorited = !wasFavorited
	c.notify()

	target := c.posts[i]
	var err error
	if wasFavorited {
		err = c.feed.Unfavorite(ctx, &target, c.user)
	} else {
		err = c.feed.Favorite(ctx, &target, c.user)
	}

	if err != nil {
		if j := c.indexOf(p.ID); j >= 0 {
			c.posts[j].Favorited = wasFavorited
		}
		c.lastErr = err
		c.notify()
		return err
	}
	return nil
}

// deleteCommitted reports whether the error still means the post row is gone:
// asset cleanup failing after the row deletion must not resurrect the entry,
// and a missing row was already deleted by someone else.
func deleteCommitted(err error) bool {
	return errors.Is(err, post.ErrAssetCleanup) || errors.Is(err, post.ErrPostNotFound)
}

func (c *Cache) indexOf(id string) int {
	for i := range c.posts {
		if c.posts[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Cache) remove(id string) {
	if i := c.indexOf(id); i >= 0 {
		c.posts = append(c.posts[:i], c.posts[i+1:]...)
	}
}

func (c *Cache) notify() {
	for _, fn := range c.listeners {
		fn()
	}
}
