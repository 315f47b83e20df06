package service

import "errors"

var (
	ErrBookNotFound       = errors.New("book not found")
	ErrProcessing         = errors.New("error processing book data")
	ErrModelNotLoaded     = errors.New("model not loaded")
	ErrNoActiveModel      = errors.New("no active model")
	ErrVersionNotFound    = errors.New("model version not found")
	ErrAlreadyOnShelf     = errors.New("book already on bookshelf")
	ErrNotOnShelf         = errors.New("book not on bookshelf")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrDetailsNotFound    = errors.New("no description found")
)
