package comment

import "errors"

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotPermitted    = errors.New("not permitted")
)
