// internal/api/errors.go
package api

import (
	"errors"
	"fmt"
)

// ErrorKind вид ошибки получения данных
type ErrorKind string

const (
	ErrorNetwork  ErrorKind = "network"   // сбой соединения, таймаут, не-2xx статус
	ErrorDecode   ErrorKind = "decode"    // тело ответа не соответствует ожидаемой форме
	ErrorNotFound ErrorKind = "not_found" // ожидаемая запись отсутствует в ответе
)

// FetchError ошибка получения данных от внешнего API
type FetchError struct {
	Kind   ErrorKind
	Source string // имя источника: "mempool", "coingecko"
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Kind)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewNetworkError создает ошибку сети
func NewNetworkError(source string, err error) *FetchError {
	return &FetchError{Kind: ErrorNetwork, Source: source, Err: err}
}

// NewDecodeError создает ошибку разбора ответа
func NewDecodeError(source string, err error) *FetchError {
	return &FetchError{Kind: ErrorDecode, Source: source, Err: err}
}

// NewNotFoundError создает ошибку отсутствия записи
func NewNotFoundError(source string, err error) *FetchError {
	return &FetchError{Kind: ErrorNotFound, Source: source, Err: err}
}

// KindOf возвращает вид ошибки; пустая строка если это не FetchError
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
