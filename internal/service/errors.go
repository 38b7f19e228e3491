package service

import (
	"errors"

	"GalleryStudio/internal/repository"
)

// ErrValidation объединяет ошибки проверки входных данных (HTTP 400)
var ErrValidation = errors.New("validation failed")

// ErrNotHuman возвращается, если запрос не прошёл проверку на спам
var ErrNotHuman = errors.New("spam check failed")

// ValidationError несёт сообщение для клиента и сопоставляется с ErrValidation
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is позволяет проверять errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// NotFoundError сопоставляется с repository.ErrNotFound, сохраняя своё сообщение
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Is(target error) bool { return target == repository.ErrNotFound }
