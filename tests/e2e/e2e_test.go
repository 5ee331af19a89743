package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"postfeed/internal/database"
	"postfeed/internal/domain/asset"
	"postfeed/internal/domain/auth"
	"postfeed/internal/domain/comment"
	"postfeed/internal/domain/favorite"
	"postfeed/internal/domain/post"
	"postfeed/internal/middleware"
	jwtsvc "postfeed/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorDetail    `json:"error,omitempty"`
	Warning string          `json:"warning,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Suite struct {
	router *gin.Engine
}

func setupSuite(t *testing.T) *Suite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, db.AutoMigrate(&auth.User{}, &post.Post{}, &favorite.Favorite{}, &comment.Comment{}))

	userRepo := auth.NewUserRepository(db)
	contentRepo := post.NewContentRepository(db)
	favoriteRepo := favorite.NewRepository(db)
	commentRepo := comment.NewRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)
	assets := asset.NewDiskStore(t.TempDir(), "posts", "/static/uploads")

	authService := auth.NewService(userRepo, jwtService)
	authHandler := auth.NewHandler(authService)

	postService := post.NewService(contentRepo, favoriteRepo, assets, commentRepo)
	postHandler := post.NewHandler(postService)

	commentService := comment.NewService(commentRepo, postService)
	commentHandler := comment.NewHandler(commentService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		postHandler.RegisterRoutes(protected)
		commentHandler.RegisterRoutes(protected)
	}

	return &Suite{router: r}
}

func (s *Suite) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, TestResponse) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var parsed TestResponse
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	}
	return w, parsed
}

func (s *Suite) register(t *testing.T, name, email string) string {
	w, resp := s.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, "register %s: %s", email, w.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

type postPayload struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Favorited bool   `json:"favorited"`
	CanDelete bool   `json:"can_delete"`
}

func (s *Suite) listPosts(t *testing.T, token, query string) []postPayload {
	w, resp := s.do(t, http.MethodGet, "/api/v1/posts"+query, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var posts []postPayload
	require.NoError(t, json.Unmarshal(resp.Data, &posts))
	return posts
}

func TestFeedEndToEnd(t *testing.T) {
	s := setupSuite(t)

	tokenA := s.register(t, "Alice", "alice@example.com")
	tokenB := s.register(t, "Bob", "bob@example.com")

	// A creates a post without an image
	w, resp := s.do(t, http.MethodPost, "/api/v1/posts", tokenA, gin.H{
		"title": "Hello",
		"body":  "first post",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created postPayload
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	require.NotEmpty(t, created.ID)

	// A sees it unfavorited and deletable
	posts := s.listPosts(t, tokenA, "")
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello", posts[0].Title)
	assert.False(t, posts[0].Favorited)
	assert.True(t, posts[0].CanDelete)

	// B's favorites feed is empty before favoriting
	assert.Empty(t, s.listPosts(t, tokenB, "?favorites=true"))

	// B favorites the post
	w, _ = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/posts/%s/favorite", created.ID), tokenB, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// favoriting twice is a conflict
	w, resp = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/posts/%s/favorite", created.ID), tokenB, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_FAVORITED", resp.Error.Code)

	// B's favorites feed now contains it, annotated
	favs := s.listPosts(t, tokenB, "?favorites=true")
	require.Len(t, favs, 1)
	assert.True(t, favs[0].Favorited)
	assert.False(t, favs[0].CanDelete, "B is not the author")

	// A's view of the same post is still unfavorited
	posts = s.listPosts(t, tokenA, "")
	require.Len(t, posts, 1)
	assert.False(t, posts[0].Favorited)

	// B cannot delete A's post
	w, resp = s.do(t, http.MethodDelete, "/api/v1/posts/"+created.ID, tokenB, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)

	// the post survived the forbidden delete
	require.Len(t, s.listPosts(t, tokenA, ""), 1)

	// A deletes it
	w, _ = s.do(t, http.MethodDelete, "/api/v1/posts/"+created.ID, tokenA, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// both feeds are empty; B's orphaned relation is tolerated by the join
	assert.Empty(t, s.listPosts(t, tokenA, ""))
	assert.Empty(t, s.listPosts(t, tokenB, "?favorites=true"))

	// B can still drop the orphaned relation
	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%s/favorite", created.ID), tokenB, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// a second unfavorite reports not-favorited
	w, resp = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%s/favorite", created.ID), tokenB, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FAVORITED", resp.Error.Code)
}

func TestAuthorFilterAndSearch(t *testing.T) {
	s := setupSuite(t)

	tokenA := s.register(t, "Alice", "alice@example.com")
	tokenB := s.register(t, "Bob", "bob@example.com")

	w, respA := s.do(t, http.MethodPost, "/api/v1/posts", tokenA, gin.H{"title": "Morning coffee", "body": "first cup"})
	require.Equal(t, http.StatusCreated, w.Code)
	var postA postPayload
	require.NoError(t, json.Unmarshal(respA.Data, &postA))

	w, _ = s.do(t, http.MethodPost, "/api/v1/posts", tokenB, gin.H{"title": "Evening run", "body": "around the park"})
	require.Equal(t, http.StatusCreated, w.Code)

	// whole feed has both, newest first
	posts := s.listPosts(t, tokenA, "")
	require.Len(t, posts, 2)

	// author filter narrows to A's post
	var meA struct {
		ID string `json:"id"`
	}
	w, respMe := s.do(t, http.MethodGet, "/api/v1/users/me", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(respMe.Data, &meA))

	byAuthor := s.listPosts(t, tokenA, "?author="+meA.ID)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, postA.ID, byAuthor[0].ID)

	// substring search is case-insensitive
	found := s.listPosts(t, tokenB, "?q=COFFEE")
	require.Len(t, found, 1)
	assert.Equal(t, postA.ID, found[0].ID)
}

func TestCommentsEndToEnd(t *testing.T) {
	s := setupSuite(t)

	tokenA := s.register(t, "Alice", "alice@example.com")
	tokenB := s.register(t, "Bob", "bob@example.com")

	w, resp := s.do(t, http.MethodPost, "/api/v1/posts", tokenA, gin.H{"title": "Discuss", "body": "comments welcome"})
	require.Equal(t, http.StatusCreated, w.Code)
	var p postPayload
	require.NoError(t, json.Unmarshal(resp.Data, &p))

	// B comments on A's post
	w, resp = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/posts/%s/comments", p.ID), tokenB, gin.H{"body": "nice post"})
	require.Equal(t, http.StatusCreated, w.Code)

	var c struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &c))

	w, resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/posts/%s/comments", p.ID), tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var comments []comment.Comment
	require.NoError(t, json.Unmarshal(resp.Data, &comments))
	require.Len(t, comments, 1)

	// the post author may delete B's comment
	w, _ = s.do(t, http.MethodDelete, "/api/v1/comments/"+c.ID, tokenA, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w, resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/posts/%s/comments", p.ID), tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	comments = nil
	require.NoError(t, json.Unmarshal(resp.Data, &comments))
	assert.Empty(t, comments)
}
