package asset

import "errors"

var (
	ErrNotFound        = errors.New("asset not found")
	ErrEmptyPayload    = errors.New("empty payload")
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrInvalidMimeType = errors.New("mime type not allowed")
)
