package comment

type AddCommentRequest struct {
	Body string `json:"body" binding:"required"`
}
