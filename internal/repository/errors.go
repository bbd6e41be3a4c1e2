package repository

import "errors"

var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrPromoterNotFound = errors.New("promoter not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrPhoneTaken       = errors.New("phone already registered")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)
