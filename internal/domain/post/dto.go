package post

import "time"

type CreatePostRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
	// ImageBase64 carries the raw image payload when the post has one.
	ImageBase64      string `json:"image_base64"`
	ImageContentType string `json:"image_content_type"`
}

type PostResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	AuthorID       string    `json:"author_id"`
	AuthorName     string    `json:"author_name"`
	AuthorImageURL string    `json:"author_image_url,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	Favorited      bool      `json:"favorited"`
	CanDelete      bool      `json:"can_delete"`
}

func ToPostResponse(p Post, requester string) PostResponse {
	return PostResponse{
		ID:             p.ID,
		Title:          p.Title,
		Body:           p.Body,
		AuthorID:       p.AuthorID,
		AuthorName:     p.AuthorName,
		AuthorImageURL: p.AuthorImageURL,
		ImageURL:       p.ImageURL,
		CreatedAt:      p.CreatedAt,
		Favorited:      p.Favorited,
		CanDelete:      requester == p.AuthorID,
	}
}

func ToPostListResponse(posts []Post, requester string) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, ToPostResponse(p, requester))
	}
	return out
}
