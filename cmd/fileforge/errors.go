package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/sir_venger/fileforge/internal/models"
)

// message переводит ошибку сценария в текст для пользователя.
func message(err error) string {
	switch {
	case errors.Is(err, models.ErrUserDeclined):
		return "Aborted!"
	case errors.Is(err, context.Canceled):
		return "Interrupted! The file was not written."
	case errors.Is(err, models.ErrInvalidName):
		return "This name is invalid! (" + err.Error() + ")"
	case errors.Is(err, models.ErrInvalidUnit), errors.Is(err, models.ErrInvalidFormat):
		return "This size is invalid! (" + err.Error() + ")"
	case errors.Is(err, models.ErrInsufficientSpace):
		return "There isn't enough free space on this volume! (" + err.Error() + ")"
	case errors.Is(err, models.ErrNoTargetDir):
		return "Failed to detect the target directory! (" + err.Error() + ")"
	default:
		return "Error: " + err.Error()
	}
}
