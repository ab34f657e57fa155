package static

import (
	"context"
	"strings"

	"pageObject/internal/browser"
	"pageObject/internal/locator"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

func (d *Driver) OpenWindow(ctx context.Context, rawURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	w := &window{}
	if rawURL != "" {
		if err := d.navigate(w, rawURL); err != nil {
			return err
		}
	} else {
		root, err := d.blank()
		if err != nil {
			return err
		}
		w.root = root
	}

	d.windows = append(d.windows, w)
	d.current = len(d.windows) - 1
	return nil
}

func (d *Driver) blank() (*html.Node, error) {
	return htmlquery.Parse(strings.NewReader("<html><head><title></title></head><body></body></html>"))
}

func (d *Driver) find(target locator.Window) int {
	for i, w := range d.windows {
		if target.Matches(title(w.root), w.name) {
			return i
		}
	}
	return -1
}

func (d *Driver) SelectWindow(ctx context.Context, target locator.Window) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.find(target)
	if i < 0 {
		return browser.WindowNotFound(target)
	}
	d.current = i
	return nil
}

// CloseWindow закрывает текущее окно и переключается на первое оставшееся.
func (d *Driver) CloseWindow(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.currentWindow(); err != nil {
		return err
	}

	d.windows = append(d.windows[:d.current], d.windows[d.current+1:]...)
	if len(d.windows) == 0 {
		d.current = -1
	} else {
		d.current = 0
	}
	return nil
}

func (d *Driver) CloseAllBut(ctx context.Context, target locator.Window) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.find(target)
	if i < 0 {
		return browser.WindowNotFound(target)
	}
	d.windows = []*window{d.windows[i]}
	d.current = 0
	return nil
}

func (d *Driver) WindowTitles(ctx context.Context) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	titles := make([]string, 0, len(d.windows))
	for _, w := range d.windows {
		titles = append(titles, title(w.root))
	}
	return titles, nil
}

func (d *Driver) WindowNames(ctx context.Context) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	names := make([]string, 0, len(d.windows))
	for _, w := range d.windows {
		names = append(names, w.name)
	}
	return names, nil
}
