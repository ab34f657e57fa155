package browser

import (
	"context"
	"fmt"

	"pageObject/internal/locator"

	"github.com/playwright-community/playwright-go"
)

// Type дописывает текст в поле посимвольно, как это делает пользователь.
func (b *PlaywrightBrowser) Type(ctx context.Context, loc locator.Locator, text string) error {
	el, err := b.first(ctx, "ввод текста", loc)
	if err != nil {
		return err
	}

	if err := el.PressSequentially(text, playwright.LocatorPressSequentiallyOptions{Timeout: b.actionTimeout()}); err != nil {
		return &ElementError{Op: "ввод текста", Locator: loc, Err: err}
	}
	return nil
}

func (b *PlaywrightBrowser) Clear(ctx context.Context, loc locator.Locator) error {
	el, err := b.first(ctx, "очистка", loc)
	if err != nil {
		return err
	}

	if err := el.Clear(playwright.LocatorClearOptions{Timeout: b.actionTimeout()}); err != nil {
		return &ElementError{Op: "очистка", Locator: loc, Err: err}
	}
	return nil
}

func (b *PlaywrightBrowser) Select(ctx context.Context, loc locator.Locator, option locator.Option) error {
	el, err := b.first(ctx, "выбор опции", loc)
	if err != nil {
		return err
	}

	var values playwright.SelectOptionValues
	switch option.Kind {
	case locator.OptionLabel:
		values.Labels = &[]string{option.Identifier}
	case locator.OptionIndex:
		values.Indexes = &[]int{option.Index}
	default:
		values.Values = &[]string{option.Identifier}
	}

	selected, err := el.SelectOption(values, playwright.LocatorSelectOptionOptions{Timeout: b.actionTimeout()})
	if err != nil {
		return &ElementError{Op: "выбор опции", Locator: loc, Err: err}
	}
	if len(selected) == 0 {
		return &ElementError{Op: "выбор опции", Locator: loc, Err: fmt.Errorf("%w: опция %s", ErrElementNotFound, option)}
	}
	return nil
}

// Value читает текущее значение поля; для элементов без свойства value берется атрибут.
func (b *PlaywrightBrowser) Value(ctx context.Context, loc locator.Locator) (string, error) {
	el, err := b.first(ctx, "чтение значения", loc)
	if err != nil {
		return "", err
	}

	result, err := el.Evaluate(`el => {
		if (el.value !== undefined && el.value !== null) return String(el.value);
		return el.getAttribute('value') || '';
	}`, nil)
	if err != nil {
		return "", &ElementError{Op: "чтение значения", Locator: loc, Err: err}
	}

	value, _ := result.(string)
	return value, nil
}
