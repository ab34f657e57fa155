package browser

import (
	"context"
	"strings"

	"pageObject/internal/locator"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// matches возвращает все совпадения локатора без ожидания их появления.
func (b *PlaywrightBrowser) matches(ctx context.Context, loc locator.Locator) (playwright.Locator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := b.currentPage()
	if err != nil {
		return nil, err
	}

	selector, err := BuildSelector(loc)
	if err != nil {
		return nil, err
	}

	return page.Locator(selector), nil
}

// first возвращает первое совпадение или ErrElementNotFound.
// Playwright сам ждет появления элемента, поэтому наличие проверяется заранее через Count.
func (b *PlaywrightBrowser) first(ctx context.Context, op string, loc locator.Locator) (playwright.Locator, error) {
	all, err := b.matches(ctx, loc)
	if err != nil {
		return nil, err
	}

	n, err := all.Count()
	if err != nil {
		return nil, &ElementError{Op: op, Locator: loc, Err: err}
	}
	if n == 0 {
		return nil, NotFound(op, loc)
	}

	return all.First(), nil
}

func (b *PlaywrightBrowser) actionTimeout() *float64 {
	return playwright.Float(float64(b.cfg.ActionTimeout.Milliseconds()))
}

func (b *PlaywrightBrowser) Click(ctx context.Context, loc locator.Locator) error {
	el, err := b.first(ctx, "клик", loc)
	if err != nil {
		return err
	}

	// Скроллим к элементу перед кликом
	if err := b.scrollIntoView(el); err != nil {
		b.log.Debug("Не удалось прокрутить к элементу", zap.Stringer("locator", loc), zap.Error(err))
	}

	if err := el.Click(playwright.LocatorClickOptions{Timeout: b.actionTimeout()}); err != nil {
		return &ElementError{Op: "клик", Locator: loc, Err: err}
	}

	if b.cfg.SettleAfterClick {
		b.settle()
	}

	return nil
}

func (b *PlaywrightBrowser) IsPresent(ctx context.Context, loc locator.Locator) (bool, error) {
	n, err := b.Count(ctx, loc)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (b *PlaywrightBrowser) Count(ctx context.Context, loc locator.Locator) (int, error) {
	all, err := b.matches(ctx, loc)
	if err != nil {
		return 0, err
	}

	n, err := all.Count()
	if err != nil {
		return 0, &ElementError{Op: "подсчет", Locator: loc, Err: err}
	}
	return n, nil
}

func (b *PlaywrightBrowser) IsEnabled(ctx context.Context, loc locator.Locator) (bool, error) {
	el, err := b.first(ctx, "проверка доступности", loc)
	if err != nil {
		return false, err
	}

	enabled, err := el.IsEnabled(playwright.LocatorIsEnabledOptions{Timeout: b.actionTimeout()})
	if err != nil {
		return false, &ElementError{Op: "проверка доступности", Locator: loc, Err: err}
	}
	return enabled, nil
}

func (b *PlaywrightBrowser) Text(ctx context.Context, loc locator.Locator) (string, error) {
	el, err := b.first(ctx, "чтение текста", loc)
	if err != nil {
		return "", err
	}

	text, err := el.InnerText(playwright.LocatorInnerTextOptions{Timeout: b.actionTimeout()})
	if err != nil {
		return "", &ElementError{Op: "чтение текста", Locator: loc, Err: err}
	}
	return strings.TrimSpace(text), nil
}

func (b *PlaywrightBrowser) Attribute(ctx context.Context, loc locator.Locator, name string) (string, bool, error) {
	el, err := b.first(ctx, "чтение атрибута", loc)
	if err != nil {
		return "", false, err
	}

	// GetAttribute не отличает пустой атрибут от отсутствующего
	result, err := el.Evaluate("(el, name) => el.getAttribute(name)", name)
	if err != nil {
		return "", false, &ElementError{Op: "чтение атрибута", Locator: loc, Err: err}
	}

	value, ok := result.(string)
	return value, ok, nil
}
