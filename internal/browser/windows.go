package browser

import (
	"context"
	"fmt"

	"pageObject/internal/locator"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

func (b *PlaywrightBrowser) pages() ([]playwright.Page, error) {
	bc := b.getContext()
	if bc == nil {
		return nil, ErrNotLaunched
	}
	return bc.Pages(), nil
}

func windowName(page playwright.Page) string {
	name, err := page.Evaluate("() => window.name")
	if err != nil || name == nil {
		return ""
	}
	return fmt.Sprint(name)
}

func (b *PlaywrightBrowser) OpenWindow(ctx context.Context, url string) error {
	bc := b.getContext()
	if bc == nil {
		return ErrNotLaunched
	}

	page, err := bc.NewPage()
	if err != nil {
		return fmt.Errorf("ошибка открытия окна: %w", err)
	}
	b.setPage(page)

	if url == "" {
		return nil
	}
	return b.Open(ctx, url)
}

func (b *PlaywrightBrowser) SelectWindow(ctx context.Context, window locator.Window) error {
	pages, err := b.pages()
	if err != nil {
		return err
	}

	for _, page := range pages {
		title, _ := page.Title()
		if !window.Matches(title, windowName(page)) {
			continue
		}

		b.setPage(page)
		if err := page.BringToFront(); err != nil {
			b.log.Debug("Не удалось вывести окно на передний план", zap.Error(err))
		}
		return nil
	}

	return WindowNotFound(window)
}

// CloseWindow закрывает текущее окно и переключается на первое оставшееся.
func (b *PlaywrightBrowser) CloseWindow(ctx context.Context) error {
	page, err := b.currentPage()
	if err != nil {
		return err
	}

	if err := page.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия окна: %w", err)
	}

	remaining, err := b.pages()
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		b.setPage(nil)
		return nil
	}

	b.setPage(remaining[0])
	return nil
}

func (b *PlaywrightBrowser) CloseAllBut(ctx context.Context, window locator.Window) error {
	pages, err := b.pages()
	if err != nil {
		return err
	}

	var keep playwright.Page
	for _, page := range pages {
		title, _ := page.Title()
		if keep == nil && window.Matches(title, windowName(page)) {
			keep = page
		}
	}
	if keep == nil {
		return WindowNotFound(window)
	}

	for _, page := range pages {
		if page == keep {
			continue
		}
		if err := page.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия окна: %w", err)
		}
	}

	b.setPage(keep)
	return nil
}

func (b *PlaywrightBrowser) WindowTitles(ctx context.Context) ([]string, error) {
	pages, err := b.pages()
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(pages))
	for _, page := range pages {
		title, err := page.Title()
		if err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, nil
}

func (b *PlaywrightBrowser) WindowNames(ctx context.Context) ([]string, error) {
	pages, err := b.pages()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(pages))
	for _, page := range pages {
		names = append(names, windowName(page))
	}
	return names, nil
}
