package apperrors

import (
	"errors"
	"fmt"
)

// Kind категория ошибки конвейера генерации
type Kind string

const (
	// KindLookup внешний провайдер не смог разрешить запрошенную сущность
	KindLookup Kind = "lookup"
	// KindConfig отсутствующая или некорректная конфигурация
	KindConfig Kind = "config"
	// KindPrecondition нарушено предусловие этапа (например, нет таблицы продуктов)
	KindPrecondition Kind = "precondition"
	// KindIO не удалось создать директорию или записать файл
	KindIO Kind = "io"
	// KindInternal внутренняя ошибка генератора
	KindInternal Kind = "internal"
)

// AppError представляет ошибку приложения с категорией и контекстом
type AppError struct {
	Kind    Kind   `json:"kind"`    // Категория для программной обработки
	Message string `json:"message"` // Сообщение для оператора
	Err     error  `json:"-"`       // Внутренняя ошибка для логов, не сериализуется
	Context string `json:"-"`       // Дополнительный контекст (функция, параметры)
}

// Error реализует интерфейс error
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap возвращает вложенную ошибку для errors.Is и errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithContext добавляет контекст к ошибке
func (e *AppError) WithContext(context string) *AppError {
	e.Context = context
	return e
}

// NewLookupError создает ошибку внешнего справочника (страна, валюта, инфляция)
func NewLookupError(message string, err error) *AppError {
	return &AppError{
		Kind:    KindLookup,
		Message: message,
		Err:     err,
	}
}

// NewConfigError создает ошибку конфигурации
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Kind:    KindConfig,
		Message: message,
		Err:     err,
	}
}

// NewPreconditionError создает ошибку нарушенного предусловия этапа
func NewPreconditionError(message string, err error) *AppError {
	return &AppError{
		Kind:    KindPrecondition,
		Message: message,
		Err:     err,
	}
}

// NewIOError создает ошибку файловой системы
func NewIOError(message string, err error) *AppError {
	return &AppError{
		Kind:    KindIO,
		Message: message,
		Err:     err,
	}
}

// NewInternalError создает внутреннюю ошибку
// Детали сохраняются во вложенной ошибке для логов
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: message,
		Err:     err,
	}
}

// KindOf возвращает категорию ошибки или KindInternal, если ошибка не AppError
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsLookup проверяет, является ли ошибка ошибкой внешнего справочника
func IsLookup(err error) bool {
	return is(err, KindLookup)
}

// IsConfig проверяет, является ли ошибка ошибкой конфигурации
func IsConfig(err error) bool {
	return is(err, KindConfig)
}

// IsPrecondition проверяет, является ли ошибка нарушением предусловия
func IsPrecondition(err error) bool {
	return is(err, KindPrecondition)
}

// IsIO проверяет, является ли ошибка ошибкой файловой системы
func IsIO(err error) bool {
	return is(err, KindIO)
}

func is(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
