package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrImagesUnavailable  = errors.New("image storage not configured")
)
