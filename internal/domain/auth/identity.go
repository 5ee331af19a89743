package auth

import "github.com/gin-gonic/gin"

const (
	ContextUserID    = "user_id"
	ContextUserName  = "user_name"
	ContextUserImage = "user_image"
)

// CurrentUser reads the identity placed on the gin context by the JWT
// middleware. The second return is false for unauthenticated requests.
func CurrentUser(c *gin.Context) (Identity, bool) {
	id := c.GetString(ContextUserID)
	if id == "" {
		return Identity{}, false
	}
	return Identity{
		ID:       id,
		Name:     c.GetString(ContextUserName),
		ImageURL: c.GetString(ContextUserImage),
	}, true
}
