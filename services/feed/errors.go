package feed

import "errors"

var (
	errEmptyPost    = errors.New("post author and content are required")
	errEmptyComment = errors.New("comment post, author and text are required")
)
