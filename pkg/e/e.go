package e

import (
	"errors"
	"fmt"
)

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrUnknownBackend       = fmt.Errorf("unknown backend")

	// Ошибки хранилища
	ErrPersistence     = fmt.Errorf("persistence failure")
	ErrVersionConflict = fmt.Errorf("document version conflict")
	ErrStorageDisabled = fmt.Errorf("storage is not configured")

	// 400 Bad Request
	ErrValidation           = fmt.Errorf("validation failed")
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrNoImages             = fmt.Errorf("no images provided")
	ErrInvalidImageURL      = fmt.Errorf("invalid image url")

	// 401 Unauthorized
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")

	// 404 Not Found
	ErrNotFound = fmt.Errorf("not found")

	// 413 Request Entity Too Large
	ErrFileTooLarge = fmt.Errorf("file too large")

	// Уведомления никогда не влияют на результат запроса
	ErrNotification = fmt.Errorf("notification failed")

	// 500
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// ValidationError описывает некорректное поле входных данных.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", v.Field, v.Reason)
}

func (v *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotificationError описывает неудачную отправку уведомления в конкретный канал.
type NotificationError struct {
	Channel string
	Err     error
}

func NewNotificationError(channel string, err error) *NotificationError {
	return &NotificationError{Channel: channel, Err: err}
}

func (n *NotificationError) Error() string {
	return fmt.Sprintf("notification via %s failed: %v", n.Channel, n.Err)
}

func (n *NotificationError) Is(target error) bool {
	return target == ErrNotification
}

func (n *NotificationError) Unwrap() error {
	return n.Err
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// Persistence помечает ошибку как ошибку хранилища, сохраняя исходную причину.
func Persistence(msg string, err error) error {
	if errors.Is(err, ErrPersistence) {
		return Wrap(msg, err)
	}

	return fmt.Errorf("%s: %w: %w", msg, ErrPersistence, err)
}

// FieldOf возвращает имя некорректного поля, если ошибка является ValidationError.
func FieldOf(err error) string {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Field
	}

	return ""
}
