package page

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Validator решает, находится ли браузер на странице.
type Validator func(ctx context.Context, c *Component) (bool, error)

// TitleContains считает страницу открытой, если заголовок окна содержит fragment.
func TitleContains(fragment string) Validator {
	return func(ctx context.Context, c *Component) (bool, error) {
		title, err := c.driver.Title(ctx)
		if err != nil {
			return false, err
		}
		return strings.Contains(title, fragment), nil
	}
}

// ElementPresent считает страницу открытой, если на ней есть элемент.
func ElementPresent(raw string) Validator {
	return func(ctx context.Context, c *Component) (bool, error) {
		return c.IsPresent(ctx, raw)
	}
}

// All требует выполнения всех проверок.
func All(validators ...Validator) Validator {
	return func(ctx context.Context, c *Component) (bool, error) {
		for _, valid := range validators {
			ok, err := valid(ctx, c)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

// Page: именованный компонент с проверкой того, что браузер на нем.
// Методы объектов страниц начинаются с Guard.
type Page struct {
	*Component
	name  string
	valid Validator
}

func NewPage(name string, c *Component, valid Validator) *Page {
	return &Page{Component: c, name: name, valid: valid}
}

func (p *Page) Name() string {
	return p.name
}

func (p *Page) IsValid(ctx context.Context) (bool, error) {
	if p.valid == nil {
		return true, nil
	}
	return p.valid(ctx, p.Component)
}

// Guard возвращает *StateError, если браузер ушел со страницы.
func (p *Page) Guard(ctx context.Context, op string) error {
	p.log.Debug("Вызов метода страницы", zap.String("page", p.name), zap.String("op", op))

	ok, err := p.IsValid(ctx)
	if err != nil {
		return p.fail(ctx, op, "", err)
	}
	if !ok {
		stateErr := &StateError{Page: p.name, Op: op, Title: p.title(ctx)}
		p.log.Error("Неверное состояние браузера", zap.Error(stateErr))
		return stateErr
	}
	return nil
}

func (p *Page) Title(ctx context.Context) (string, error) {
	return p.driver.Title(ctx)
}

// State возвращает document.readyState.
func (p *Page) State(ctx context.Context) (string, error) {
	return p.driver.ReadinessState(ctx)
}

func (p *Page) IsLoaded(ctx context.Context) (bool, error) {
	return p.waits.IsPageLoaded(ctx)
}

// WaitForLoad ждет загрузки с мягким таймаутом; timeout <= 0 берет PageLoadTimeout.
func (p *Page) WaitForLoad(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = p.opts.PageLoadTimeout
	}
	return p.waits.WaitForPageLoad(ctx, timeout)
}

// CloseWindow закрывает окно страницы; драйвер переключается на первое оставшееся.
func (p *Page) CloseWindow(ctx context.Context) error {
	if err := p.driver.CloseWindow(ctx); err != nil {
		return p.fail(ctx, "закрытие окна", "", err)
	}
	return nil
}

// Validatable описывает цель NavigateTo: страницу с именем и проверкой.
type Validatable interface {
	Name() string
	IsValid(ctx context.Context) (bool, error)
}

// Initializer: необязательная настройка страницы перед проверкой.
type Initializer interface {
	Init(ctx context.Context, params ...any) error
}

// NavigateTo строит объект целевой страницы из текущего компонента, инициализирует
// его и проверяет, что браузер действительно на нем.
func NavigateTo[T Validatable](ctx context.Context, from *Component, build func(*Component) T, params ...any) (T, error) {
	var zero T

	target := build(from)
	from.log.Info("Переход на страницу", zap.String("page", target.Name()))

	if initer, ok := any(target).(Initializer); ok {
		if err := initer.Init(ctx, params...); err != nil {
			return zero, from.fail(ctx, "инициализация "+target.Name(), "", err)
		}
	}

	ok, err := target.IsValid(ctx)
	if err != nil {
		return zero, from.fail(ctx, "проверка "+target.Name(), "", err)
	}
	if !ok {
		return zero, &StateError{Page: target.Name(), Op: "переход", Title: from.title(ctx)}
	}
	return target, nil
}
