package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrInspectionNotFound = errors.New("inspection not found")
	ErrInvalidTemplate    = errors.New("invalid template")
	ErrForbidden          = errors.New("forbidden")
)
