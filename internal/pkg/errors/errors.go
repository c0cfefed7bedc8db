package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrBadRequest используется, когда тело запроса не удалось разобрать.
	ErrBadRequest = errors.New("malformed request")

	// ErrEmptyResult используется, когда выборка (страница, категория, список категорий) пуста.
	// Клиенты ожидают 422 в этом случае, поэтому это не ErrNotFound.
	ErrEmptyResult = errors.New("empty result")

	// ErrUnauthorized используется для ошибок авторизации (нет токена, неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")
)
