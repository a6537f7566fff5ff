package subscriptions

import "errors"

var (
	ErrFeedExists       = errors.New("feed already exists")
	ErrFeedNotFound     = errors.New("feed not found")
	ErrEmptyURL         = errors.New("feed url is empty")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrBadFormat        = errors.New("bad subscriptions document")
	ErrIncompleteQuery  = errors.New("feed query must set url, title and category explicitly")
)
