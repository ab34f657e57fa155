package table

import (
	"context"
	"errors"
	"strings"

	"pageObject/internal/browser"
	"pageObject/internal/locator"

	"go.uber.org/zap"
)

var ErrUnsupportedOperation = errors.New("таблица не поддерживает выбор строк: не задан атрибут выбора")

// Driver: операции драйвера, нужные таблице.
type Driver interface {
	Click(ctx context.Context, loc locator.Locator) error
	IsPresent(ctx context.Context, loc locator.Locator) (bool, error)
	Count(ctx context.Context, loc locator.Locator) (int, error)
	Text(ctx context.Context, loc locator.Locator) (string, error)
	Attribute(ctx context.Context, loc locator.Locator, name string) (string, bool, error)
}

// Settler вызывается после каждого перехода по страницам таблицы.
type Settler func(ctx context.Context) error

// Table читает HTML-таблицу, страницу за страницей. Состояние таблицы целиком
// живет на странице: каждый вызов заново опрашивает DOM.
// Поиск и выгрузка листают страницы и оставляют таблицу там, где остановились.
type Table struct {
	driver Driver
	cfg    Config
	log    *zap.Logger
	settle Settler
}

type Option func(*Table)

func WithSettler(settle Settler) Option {
	return func(t *Table) {
		t.settle = settle
	}
}

func New(driver Driver, cfg Config, log *zap.Logger, opts ...Option) *Table {
	if log == nil {
		log = zap.NewNop()
	}

	t := &Table{
		driver: driver,
		cfg:    cfg.withDefaults(),
		log:    log.Named("table"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Table) Config() Config {
	return t.cfg
}

// SetTableLocator меняет корень таблицы; вызывать до первого запроса.
func (t *Table) SetTableLocator(xpath string) {
	if xpath == "" {
		xpath = DefaultTableLocator
	}
	t.cfg.Table = xpath
}

// SetSelection включает IsRowSelected.
func (t *Table) SetSelection(name, valueSubstring string) {
	t.cfg.Selection = &SelectionAttribute{Name: name, ValueSubstring: valueSubstring}
}

func (t *Table) rows() locator.Locator {
	return locator.XPath(t.cfg.Table + t.cfg.Row)
}

func (t *Table) row(n int) locator.Locator {
	return t.rows().Nth(n)
}

func (t *Table) cell(row, col int) locator.Locator {
	return t.row(row).Append(t.cfg.Cell).Nth(col)
}

func (t *Table) headerCell(col int) locator.Locator {
	return locator.XPath(t.cfg.Table + t.cfg.HeaderRow + t.cfg.HeaderCell).Nth(col)
}

// FindColumn возвращает номер первого столбца, заголовок которого содержит header, или 0.
func (t *Table) FindColumn(ctx context.Context, header string) (int, error) {
	for col := 1; ; col++ {
		cell := t.headerCell(col)
		present, err := t.driver.IsPresent(ctx, cell)
		if err != nil {
			return 0, err
		}
		if !present {
			return 0, nil
		}

		text, err := t.driver.Text(ctx, cell)
		if err != nil {
			return 0, err
		}
		if strings.Contains(text, header) {
			return col, nil
		}
	}
}

// Columns возвращает тексты заголовков по порядку.
func (t *Table) Columns(ctx context.Context) ([]string, error) {
	var headers []string
	for col := 1; ; col++ {
		cell := t.headerCell(col)
		present, err := t.driver.IsPresent(ctx, cell)
		if err != nil {
			return nil, err
		}
		if !present {
			return headers, nil
		}

		text, err := t.driver.Text(ctx, cell)
		if err != nil {
			return nil, err
		}
		headers = append(headers, text)
	}
}

// FindRowOnPage ищет на текущей странице первую строку, текст которой содержит все ключи.
func (t *Table) FindRowOnPage(ctx context.Context, keys ...string) (int, error) {
	for n := 1; ; n++ {
		row := t.row(n)
		present, err := t.driver.IsPresent(ctx, row)
		if err != nil {
			return 0, err
		}
		if !present {
			return 0, nil
		}

		text, err := t.driver.Text(ctx, row)
		if err != nil {
			return 0, err
		}
		if containsAll(text, keys) {
			return n, nil
		}
	}
}

func containsAll(text string, keys []string) bool {
	for _, key := range keys {
		if !strings.Contains(text, key) {
			return false
		}
	}
	return true
}

// FindRow ищет строку на текущей и следующих страницах.
// Номер строки относится к странице, на которой остановился поиск.
func (t *Table) FindRow(ctx context.Context, keys ...string) (int, error) {
	n, err := t.FindRowOnPage(ctx, keys...)
	if err != nil || n > 0 {
		return n, err
	}

	for pages := 1; t.withinLimit(ctx, pages); pages++ {
		moved, err := t.advance(ctx)
		if err != nil || !moved {
			return 0, err
		}

		n, err = t.FindRowOnPage(ctx, keys...)
		if err != nil || n > 0 {
			return n, err
		}
	}
	return 0, nil
}

func (t *Table) FindEntity(ctx context.Context, entity Entity) (int, error) {
	return t.FindRow(ctx, entity.SearchKeys()...)
}

// Row находит строку по ключам и читает ее ячейки. Второе значение false, если строки нет.
func (t *Table) Row(ctx context.Context, keys ...string) (Row, bool, error) {
	n, err := t.FindRow(ctx, keys...)
	if err != nil || n == 0 {
		return nil, false, err
	}

	row, err := t.RowOnPage(ctx, n)
	if err != nil {
		return nil, false, err
	}
	return row, true, nil
}

func (t *Table) RowOf(ctx context.Context, entity Entity) (Row, bool, error) {
	return t.Row(ctx, entity.SearchKeys()...)
}

// RowOnPage читает ячейки строки n текущей страницы.
func (t *Table) RowOnPage(ctx context.Context, n int) (Row, error) {
	row := Row{}
	for col := 1; ; col++ {
		cell := t.cell(n, col)
		present, err := t.driver.IsPresent(ctx, cell)
		if err != nil {
			return nil, err
		}
		if !present {
			return row, nil
		}

		text, err := t.driver.Text(ctx, cell)
		if err != nil {
			return nil, err
		}
		row = append(row, text)
	}
}

func (t *Table) rowsOnPage(ctx context.Context) ([]Row, error) {
	count, err := t.RowCountOnPage(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, count)
	for n := 1; n <= count; n++ {
		row, err := t.RowOnPage(ctx, n)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AllRows выгружает строки текущей и всех следующих страниц сверху вниз.
func (t *Table) AllRows(ctx context.Context) ([]Row, error) {
	all, err := t.rowsOnPage(ctx)
	if err != nil {
		return nil, err
	}

	for pages := 1; t.withinLimit(ctx, pages); pages++ {
		moved, err := t.advance(ctx)
		if err != nil {
			return nil, err
		}
		if !moved {
			break
		}

		rows, err := t.rowsOnPage(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
	}
	return all, nil
}

func (t *Table) RowCountOnPage(ctx context.Context) (int, error) {
	return t.driver.Count(ctx, t.rows())
}

// RowCount считает строки на текущей и всех следующих страницах.
func (t *Table) RowCount(ctx context.Context) (int, error) {
	total, err := t.RowCountOnPage(ctx)
	if err != nil {
		return 0, err
	}

	for pages := 1; t.withinLimit(ctx, pages); pages++ {
		moved, err := t.advance(ctx)
		if err != nil {
			return 0, err
		}
		if !moved {
			break
		}

		n, err := t.RowCountOnPage(ctx)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// ClickRow кликает по строке n текущей страницы и не ждет перерисовки.
func (t *Table) ClickRow(ctx context.Context, n int) error {
	return t.driver.Click(ctx, t.row(n))
}

// ClickRowAndWait кликает по строке и ждет, пока страница успокоится.
func (t *Table) ClickRowAndWait(ctx context.Context, n int) error {
	if err := t.ClickRow(ctx, n); err != nil {
		return err
	}
	return t.settled(ctx)
}

// IsRowSelected проверяет атрибут выбора строки n. Ненайденная строка не выбрана,
// остальные ошибки драйвера возвращаются как есть.
func (t *Table) IsRowSelected(ctx context.Context, n int) (bool, error) {
	sel := t.cfg.Selection
	if sel == nil || sel.Name == "" || sel.ValueSubstring == "" {
		return false, ErrUnsupportedOperation
	}

	value, ok, err := t.driver.Attribute(ctx, t.row(n), sel.Name)
	if errors.Is(err, browser.ErrElementNotFound) {
		t.log.Debug("Строка не найдена при проверке выбора", zap.Int("row", n))
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok && strings.Contains(value, sel.ValueSubstring), nil
}

func (t *Table) FirstPage(ctx context.Context) error {
	_, err := t.clickIfPresent(ctx, t.cfg.FirstPage)
	return err
}

func (t *Table) PreviousPage(ctx context.Context) error {
	_, err := t.clickIfPresent(ctx, t.cfg.PreviousPage)
	return err
}

func (t *Table) NextPage(ctx context.Context) error {
	_, err := t.advance(ctx)
	return err
}

func (t *Table) LastPage(ctx context.Context) error {
	_, err := t.clickIfPresent(ctx, t.cfg.LastPage)
	return err
}

func (t *Table) advance(ctx context.Context) (bool, error) {
	return t.clickIfPresent(ctx, t.cfg.NextPage)
}

func (t *Table) clickIfPresent(ctx context.Context, control locator.Locator) (bool, error) {
	present, err := t.driver.IsPresent(ctx, control)
	if err != nil || !present {
		return false, err
	}

	if err := t.driver.Click(ctx, control); err != nil {
		return false, err
	}
	t.log.Debug("Переход по страницам таблицы", zap.Stringer("control", control))

	if err := t.settled(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (t *Table) settled(ctx context.Context) error {
	if t.settle == nil {
		return nil
	}
	return t.settle(ctx)
}

// withinLimit сообщает, можно ли перейти на страницу pages+1. Предупреждает
// только если обход обрезан, то есть следующая страница еще есть.
func (t *Table) withinLimit(ctx context.Context, pages int) bool {
	if t.cfg.MaxPages <= 0 || pages < t.cfg.MaxPages {
		return true
	}
	if more, err := t.driver.IsPresent(ctx, t.cfg.NextPage); err == nil && more {
		t.log.Warn("Достигнут предел страниц таблицы", zap.Int("max_pages", t.cfg.MaxPages))
	}
	return false
}
