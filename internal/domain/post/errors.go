package post

import "errors"

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrNotPermitted     = errors.New("not permitted")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Warnings for the two documented partial-success cases: the primary
	// mutation committed, the secondary asset step did not.
	ErrImageUpload  = errors.New("post image upload failed")
	ErrAssetCleanup = errors.New("post image cleanup failed")
)
