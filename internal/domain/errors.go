package domain

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrPhotoNotFound   = errors.New("photo not found")
	ErrAlreadyMain     = errors.New("this is already the main photo")
	ErrMainPhotoDelete = errors.New("cannot delete the main photo")
	ErrAssetStore      = errors.New("asset store failure")
	ErrPersistence     = errors.New("failed to save changes")
)
