package models

import "github.com/pkg/errors"

// Ошибки, прерывающие сценарий создания файла.
var (
	ErrInvalidName       = errors.New("invalid file name")
	ErrUserDeclined      = errors.New("aborted by user")
	ErrInvalidUnit       = errors.New("invalid size unit")
	ErrInvalidFormat     = errors.New("invalid size format")
	ErrInsufficientSpace = errors.New("not enough free space")
	ErrNoTargetDir       = errors.New("target directory not found")
	ErrIO                = errors.New("file write failed")
)
