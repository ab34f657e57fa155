package page

import (
	"errors"
	"fmt"
)

var ErrInvalidPageState = errors.New("браузер не на ожидаемой странице")

// ActionError: неудачное действие компонента с локатором и заголовком окна на момент сбоя.
type ActionError struct {
	Action  string
	Locator string
	Title   string
	Err     error
}

func (e *ActionError) Error() string {
	if e.Locator == "" {
		return fmt.Sprintf("%s: %v (окно %q)", e.Action, e.Err, e.Title)
	}
	return fmt.Sprintf("%s %s: %v (окно %q)", e.Action, e.Locator, e.Err, e.Title)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// StateError возвращается, когда проверка страницы показала, что браузер в другом месте.
type StateError struct {
	Page  string
	Op    string
	Title string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s.%s, текущее окно %q", ErrInvalidPageState, e.Page, e.Op, e.Title)
}

func (e *StateError) Unwrap() error {
	return ErrInvalidPageState
}
