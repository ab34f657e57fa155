package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"pageObject/internal/cli/ui"
	"pageObject/internal/page"
)

// ElementHandler обрабатывает команды над элементами текущей страницы
type ElementHandler struct {
	comp *page.Component
	out  io.Writer
}

func NewElementHandler(comp *page.Component, out io.Writer) *ElementHandler {
	return &ElementHandler{
		comp: comp,
		out:  out,
	}
}

// Open открывает абсолютный URL как есть, остальное считает путем приложения
func (h *ElementHandler) Open(ctx context.Context, target string) {
	url := target
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		url = h.comp.URL(target)
	}

	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconArrow+" Открытие %s..."+ui.ColorReset+"\n", url)
	if err := h.comp.Driver().Open(ctx, url); err != nil {
		ui.Fail(h.out, "Ошибка навигации", err)
		return
	}
	h.Title(ctx)
}

func (h *ElementHandler) Title(ctx context.Context) {
	title, err := h.comp.Driver().Title(ctx)
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	ui.Field(h.out, "Заголовок", title)
}

func (h *ElementHandler) Present(ctx context.Context, loc string) {
	ok, err := h.comp.IsPresent(ctx, loc)
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	if ok {
		ui.Ok(h.out, "Элемент найден")
		return
	}
	ui.Warn(h.out, "Элемент не найден")
}

func (h *ElementHandler) Count(ctx context.Context, loc string) {
	n, err := h.comp.Count(ctx, loc)
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	ui.Field(h.out, "Совпадений", n)
}

func (h *ElementHandler) Text(ctx context.Context, loc string) {
	text, err := h.comp.Text(ctx, loc)
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	ui.Field(h.out, "Текст", strconv.Quote(text))
}

func (h *ElementHandler) Value(ctx context.Context, loc string) {
	value, err := h.comp.Value(ctx, loc)
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	ui.Field(h.out, "Значение", strconv.Quote(value))
}

func (h *ElementHandler) Attr(ctx context.Context, loc, name string) {
	value, ok, err := h.comp.Attribute(ctx, loc, name)
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	if !ok {
		ui.Warn(h.out, "Атрибут %s отсутствует", name)
		return
	}
	ui.Field(h.out, name, strconv.Quote(value))
}

func (h *ElementHandler) Click(ctx context.Context, loc string) {
	if err := h.comp.Click(ctx, loc); err != nil {
		ui.Fail(h.out, "Ошибка клика", err)
		return
	}
	ui.Ok(h.out, "Клик выполнен")
}

func (h *ElementHandler) Scroll(ctx context.Context, loc string) {
	if err := h.comp.ScrollTo(ctx, loc); err != nil {
		ui.Fail(h.out, "Ошибка прокрутки", err)
		return
	}
	ui.Ok(h.out, "Элемент в видимой области")
}

func (h *ElementHandler) Type(ctx context.Context, loc, text string) {
	if err := h.comp.Type(ctx, loc, text); err != nil {
		ui.Fail(h.out, "Ошибка ввода", err)
		return
	}
	ui.Ok(h.out, "Текст введен")
}

func (h *ElementHandler) Select(ctx context.Context, loc, option string) {
	if err := h.comp.Select(ctx, loc, option); err != nil {
		ui.Fail(h.out, "Ошибка выбора", err)
		return
	}
	ui.Ok(h.out, "Опция выбрана")
}

// Wait ждет элемент; без таймаута используется неявное ожидание
func (h *ElementHandler) Wait(ctx context.Context, loc string, timeout time.Duration) {
	start := time.Now()
	if err := h.comp.WaitForPresence(ctx, loc, timeout); err != nil {
		ui.Fail(h.out, "Не дождались", err)
		return
	}
	ui.Ok(h.out, "Элемент появился за %s", time.Since(start).Round(time.Millisecond))
}

func (h *ElementHandler) WaitLoad(ctx context.Context, timeout time.Duration) {
	if timeout <= 0 {
		timeout = h.comp.Options().PageLoadTimeout
	}
	if err := h.comp.Waits().WaitForPageLoad(ctx, timeout); err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	loaded, err := h.comp.Waits().IsPageLoaded(ctx)
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	if loaded {
		ui.Ok(h.out, "Страница загружена")
		return
	}
	ui.Warn(h.out, "Страница так и не загрузилась, продолжаем")
}

// Until в консоли всегда ограничен по времени
func (h *ElementHandler) Until(ctx context.Context, script string, timeout time.Duration) {
	if timeout <= 0 {
		timeout = h.comp.Options().PageLoadTimeout
	}
	if err := h.comp.Waits().WaitUntil(ctx, script, timeout); err != nil {
		ui.Fail(h.out, "Не дождались", err)
		return
	}
	ui.Ok(h.out, "Условие выполнено")
}
