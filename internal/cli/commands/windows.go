package commands

import (
	"context"
	"fmt"
	"io"

	"pageObject/internal/cli/ui"
	"pageObject/internal/locator"
	"pageObject/internal/page"
)

// WindowHandler обрабатывает команды переключения окон
type WindowHandler struct {
	comp *page.Component
	out  io.Writer
}

func NewWindowHandler(comp *page.Component, out io.Writer) *WindowHandler {
	return &WindowHandler{
		comp: comp,
		out:  out,
	}
}

// List выводит окна: заголовок и имя
func (h *WindowHandler) List(ctx context.Context) {
	titles, err := h.comp.Driver().WindowTitles(ctx)
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	names, err := h.comp.Driver().WindowNames(ctx)
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}

	fmt.Fprintln(h.out, ui.ColorBold+ui.IconWindow+" Окна:"+ui.ColorReset)
	for i, title := range titles {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		fmt.Fprintf(h.out, "  "+ui.ColorBold+"%d"+ui.ColorReset+" %s "+ui.ColorGray+"name=%s"+ui.ColorReset+"\n", i+1, title, name)
	}
}

func (h *WindowHandler) Select(ctx context.Context, raw string) {
	window, err := locator.ParseWindow(raw)
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	if err := h.comp.Driver().SelectWindow(ctx, window); err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	ui.Ok(h.out, "Выбрано окно %s", window)
}
