package browser

import (
	"errors"
	"fmt"

	"pageObject/internal/locator"
)

var (
	ErrElementNotFound = errors.New("элемент не найден")
	ErrWindowNotFound  = errors.New("окно не найдено")
	ErrNotLaunched     = errors.New("браузер не запущен")
)

// ElementError связывает неудачную операцию с локатором, на котором она упала.
type ElementError struct {
	Op      string
	Locator locator.Locator
	Err     error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Locator, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

// NotFound строит ошибку отсутствия элемента; используется всеми реализациями порта.
func NotFound(op string, loc locator.Locator) error {
	return &ElementError{Op: op, Locator: loc, Err: ErrElementNotFound}
}

func WindowNotFound(window locator.Window) error {
	return fmt.Errorf("%w: %s", ErrWindowNotFound, window)
}
