package post

import (
	"context"
	"testing"
	"time"

	"postfeed/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupContentRepo(t *testing.T) ContentRepository {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Post{}))
	return NewContentRepository(db)
}

func TestContentRepository_InsertAssignsIDAndTimestamp(t *testing.T) {
	repo := setupContentRepo(t)

	p := &Post{Title: "Hello", Body: "body", AuthorID: "u1", AuthorName: "Alice"}
	require.NoError(t, repo.Insert(context.Background(), p))

	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestContentRepository_InsertHonorsFixtureID(t *testing.T) {
	repo := setupContentRepo(t)

	p := &Post{ID: "p1", Title: "fixture", AuthorID: "u1", AuthorName: "Alice"}
	require.NoError(t, repo.Insert(context.Background(), p))
	assert.Equal(t, "p1", p.ID)
}

func TestContentRepository_FindOrdered_TimestampDescIDAsc(t *testing.T) {
	repo := setupContentRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fixtures := []Post{
		{ID: "b", Title: "older", AuthorID: "u1", AuthorName: "A", CreatedAt: base.Add(-time.Hour)},
		{ID: "c", Title: "tie", AuthorID: "u1", AuthorName: "A", CreatedAt: base},
		{ID: "a", Title: "tie", AuthorID: "u2", AuthorName: "B", CreatedAt: base},
	}
	for i := range fixtures {
		require.NoError(t, repo.Insert(ctx, &fixtures[i]))
	}

	posts, err := repo.FindOrdered(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, posts, 3)

	// newest first, equal timestamps ordered by id ascending
	assert.Equal(t, "a", posts[0].ID)
	assert.Equal(t, "c", posts[1].ID)
	assert.Equal(t, "b", posts[2].ID)
}

func TestContentRepository_FindOrdered_ByAuthor(t *testing.T) {
	repo := setupContentRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &Post{ID: "p1", Title: "a", AuthorID: "u1", AuthorName: "A"}))
	require.NoError(t, repo.Insert(ctx, &Post{ID: "p2", Title: "b", AuthorID: "u2", AuthorName: "B"}))

	posts, err := repo.FindOrdered(ctx, Query{AuthorID: "u1"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "p1", posts[0].ID)
}

func TestContentRepository_FindOrdered_IDSet(t *testing.T) {
	repo := setupContentRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &Post{ID: "p1", Title: "a", AuthorID: "u1", AuthorName: "A"}))
	require.NoError(t, repo.Insert(ctx, &Post{ID: "p2", Title: "b", AuthorID: "u1", AuthorName: "A"}))

	// membership filter, including an id with no row
	posts, err := repo.FindOrdered(ctx, Query{IDs: []string{"p2", "p-gone"}, IDsSet: true})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "p2", posts[0].ID)
}

func TestContentRepository_FindOrdered_EmptyIDSetShortCircuits(t *testing.T) {
	repo := setupContentRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &Post{ID: "p1", Title: "a", AuthorID: "u1", AuthorName: "A"}))

	// an explicitly empty set is not "no filter": it selects nothing
	posts, err := repo.FindOrdered(ctx, Query{IDs: []string{}, IDsSet: true})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestContentRepository_DeleteByID(t *testing.T) {
	repo := setupContentRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &Post{ID: "p1", Title: "a", AuthorID: "u1", AuthorName: "A"}))

	assert.NoError(t, repo.DeleteByID(ctx, "p1"))
	assert.ErrorIs(t, repo.DeleteByID(ctx, "p1"), ErrPostNotFound)
}

func TestContentRepository_GetByID_NotFound(t *testing.T) {
	repo := setupContentRepo(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}
