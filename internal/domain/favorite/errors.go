package favorite

import "errors"

var (
	ErrAlreadyFavorited = errors.New("post already favorited")
	ErrNotFavorited     = errors.New("post not favorited")
)
