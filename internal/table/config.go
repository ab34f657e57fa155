package table

import (
	"pageObject/internal/locator"
)

const (
	DefaultTableLocator      = "//table"
	DefaultRowLocator        = "/tbody/tr"
	DefaultCellLocator       = "/td"
	DefaultHeaderRowLocator  = "/thead/tr"
	DefaultHeaderCellLocator = "/th"
)

var (
	DefaultFirstPage    = locator.MustParse("xpath=//a/img[contains(@src,'first-page.gif')]")
	DefaultPreviousPage = locator.MustParse("xpath=//a/img[contains(@src,'prev-page.gif')]")
	DefaultNextPage     = locator.MustParse("xpath=//a/img[contains(@src,'next-page.gif')]")
	DefaultLastPage     = locator.MustParse("xpath=//a/img[contains(@src,'last-page.gif')]")
)

// SelectionAttribute описывает, как строка таблицы помечает себя выбранной:
// атрибут Name строки содержит подстроку ValueSubstring (например, CSS-класс).
type SelectionAttribute struct {
	Name           string
	ValueSubstring string
}

// Config описывает расположение таблицы на странице.
// Table: XPath корня таблицы; Row, Cell, HeaderRow, HeaderCell: относительные XPath-фрагменты.
// Пустые поля заменяются значениями по умолчанию.
type Config struct {
	Table      string
	Row        string
	Cell       string
	HeaderRow  string
	HeaderCell string

	FirstPage    locator.Locator
	PreviousPage locator.Locator
	NextPage     locator.Locator
	LastPage     locator.Locator

	Selection *SelectionAttribute

	// MaxPages ограничивает обход страниц при поиске и выгрузке; 0: без ограничения.
	MaxPages int
}

func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.Table == "" {
		c.Table = DefaultTableLocator
	}
	if c.Row == "" {
		c.Row = DefaultRowLocator
	}
	if c.Cell == "" {
		c.Cell = DefaultCellLocator
	}
	if c.HeaderRow == "" {
		c.HeaderRow = DefaultHeaderRowLocator
	}
	if c.HeaderCell == "" {
		c.HeaderCell = DefaultHeaderCellLocator
	}
	if c.FirstPage.Identifier == "" {
		c.FirstPage = DefaultFirstPage
	}
	if c.PreviousPage.Identifier == "" {
		c.PreviousPage = DefaultPreviousPage
	}
	if c.NextPage.Identifier == "" {
		c.NextPage = DefaultNextPage
	}
	if c.LastPage.Identifier == "" {
		c.LastPage = DefaultLastPage
	}
	return c
}
