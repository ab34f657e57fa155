package browser

import (
	"context"
	"fmt"
	"time"

	"pageObject/internal/locator"

	"github.com/playwright-community/playwright-go"
)

// scrollIntoView прокручивает страницу к элементу, если он вне экрана.
func (b *PlaywrightBrowser) scrollIntoView(el playwright.Locator) error {
	// Проверяем, виден ли элемент (IsVisible проверяет и видимость, и наличие в DOM)
	isVisible, err := el.IsVisible()
	if err == nil && isVisible {
		inView, err := isElementInViewport(el)
		if err == nil && inView {
			return nil
		}
	}

	err = el.ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		// Если ScrollIntoViewIfNeeded не работает, используем простой scrollIntoView с auto
		_, err = el.Evaluate(`el => {
			el.scrollIntoView({
				behavior: 'auto',
				block: 'center',
				inline: 'center'
			});
		}`, nil)
		if err != nil {
			return fmt.Errorf("ошибка прокрутки к элементу: %w", err)
		}
		// Даем время на завершение прокрутки
		time.Sleep(200 * time.Millisecond)
	}

	return nil
}

func isElementInViewport(el playwright.Locator) (bool, error) {
	result, err := el.Evaluate(`el => {
		const rect = el.getBoundingClientRect();
		const windowHeight = window.innerHeight || document.documentElement.clientHeight;
		const windowWidth = window.innerWidth || document.documentElement.clientWidth;

		const vertInView = (rect.top <= windowHeight) && ((rect.top + rect.height) >= 0);
		const horInView = (rect.left <= windowWidth) && ((rect.left + rect.width) >= 0);

		return vertInView && horInView;
	}`, nil)
	if err != nil {
		return false, err
	}

	inView, _ := result.(bool)
	return inView, nil
}

// ScrollTo прокручивает к элементу по локатору.
func (b *PlaywrightBrowser) ScrollTo(ctx context.Context, loc locator.Locator) error {
	el, err := b.first(ctx, "прокрутка", loc)
	if err != nil {
		return err
	}
	if err := b.scrollIntoView(el); err != nil {
		return &ElementError{Op: "прокрутка", Locator: loc, Err: err}
	}
	return nil
}
