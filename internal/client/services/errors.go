package services

import "errors"

var (
	ErrEmptyToken     = errors.New("backend returned an empty access token")
	ErrInvalidArticle = errors.New("article must be a non-empty path segment")
)
