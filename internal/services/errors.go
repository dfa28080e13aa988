package services

import "errors"

var (
	ErrWorkspaceNotFound    = errors.New("workspace not found")
	ErrItemNotFound         = errors.New("item not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrForbidden            = errors.New("access denied")
	ErrInvalidItemType      = errors.New("type must be document or folder")
	ErrEmptyName            = errors.New("name is required")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailTaken           = errors.New("email already registered")
	ErrWeakPassword         = errors.New("password must be at least 8 characters")
	ErrInvalidRefreshToken  = errors.New("invalid or expired refresh token")
	ErrInvalidPreferences   = errors.New("invalid preferences")
	ErrWrongTokenUse        = errors.New("token used for the wrong purpose")
)
