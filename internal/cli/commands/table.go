package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"pageObject/internal/cli/ui"
	"pageObject/internal/page"
	"pageObject/internal/table"
)

// TableHandler обрабатывает команды над таблицей страницы
type TableHandler struct {
	comp  *page.Component
	out   io.Writer
	table *table.Table
}

// consolePageLimit защищает консоль от зацикленной пагинации
const consolePageLimit = 100

func NewTableHandler(comp *page.Component, out io.Writer) *TableHandler {
	cfg := table.DefaultConfig()
	cfg.MaxPages = consolePageLimit
	return &TableHandler{
		comp:  comp,
		out:   out,
		table: comp.Table(cfg),
	}
}

// Use выбирает таблицу по XPath, остальные локаторы по умолчанию
func (h *TableHandler) Use(xpath string) {
	h.table.SetTableLocator(xpath)
	ui.Ok(h.out, "Таблица %s", h.table.Config().Table)
}

func (h *TableHandler) Columns(ctx context.Context) {
	headers, err := h.table.Columns(ctx)
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	if len(headers) == 0 {
		ui.Warn(h.out, "Заголовков нет")
		return
	}
	ui.Cells(h.out, 0, headers)
}

func (h *TableHandler) Column(ctx context.Context, header string) {
	n, err := h.table.FindColumn(ctx, header)
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	if n == 0 {
		ui.Warn(h.out, "Колонка %q не найдена", header)
		return
	}
	ui.Field(h.out, "Колонка", n)
}

// Find ищет строку на всех страницах, таблица остается на найденной странице
func (h *TableHandler) Find(ctx context.Context, keys []string) {
	n, err := h.table.FindRow(ctx, keys...)
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	if n == 0 {
		ui.Warn(h.out, "Строка не найдена")
		return
	}
	row, err := h.table.RowOnPage(ctx, n)
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	ui.Cells(h.out, n, row)
}

func (h *TableHandler) Row(ctx context.Context, raw string) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		ui.Warn(h.out, "Номер строки начинается с 1")
		return
	}
	row, err := h.table.RowOnPage(ctx, n)
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	ui.Cells(h.out, n, row)
}

func (h *TableHandler) Rows(ctx context.Context) {
	rows, err := h.table.AllRows(ctx)
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	fmt.Fprintf(h.out, ui.ColorBold+ui.IconTable+" Строк: %d"+ui.ColorReset+"\n", len(rows))
	for i, row := range rows {
		ui.Cells(h.out, i+1, row)
	}
}

// Page листает таблицу: first, prev, next, last
func (h *TableHandler) Page(ctx context.Context, direction string) {
	var err error
	switch direction {
	case "first":
		err = h.table.FirstPage(ctx)
	case "prev":
		err = h.table.PreviousPage(ctx)
	case "next":
		err = h.table.NextPage(ctx)
	case "last":
		err = h.table.LastPage(ctx)
	}
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	count, err := h.table.RowCountOnPage(ctx)
	if err != nil {
		ui.Fail(h.out, "Ошибка", err)
		return
	}
	ui.Field(h.out, "Строк на странице", count)
}
