package page

import (
	"context"
	"time"

	"pageObject/internal/browser"
	"pageObject/internal/format"
	"pageObject/internal/locator"
	"pageObject/internal/sanitizer"
	"pageObject/internal/table"
	"pageObject/internal/wait"

	"go.uber.org/zap"
)

const (
	DefaultPageLoadTimeout = 30 * time.Second
	DefaultImplicitTimeout = 3 * time.Second
)

type Options struct {
	// BaseURL и ContextPath предваряют путь в Open.
	BaseURL     string
	ContextPath string

	Formatter format.Formatter
	Sanitizer *sanitizer.DataSanitizer
	Logger    *zap.Logger

	PollInterval    time.Duration
	PageLoadTimeout time.Duration
	// ImplicitTimeout используется WaitForPresence, когда таймаут не задан.
	ImplicitTimeout time.Duration
}

// Component: базовый строительный блок объектов страниц: бизнес-операции
// описываются через строковые локаторы, которые разбираются при каждом вызове.
type Component struct {
	driver browser.Driver
	opts   Options
	waits  *wait.Poller
	log    *zap.Logger
}

func New(driver browser.Driver, opts Options) *Component {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Formatter == nil {
		opts.Formatter = format.NewDefault()
	}
	if opts.Sanitizer == nil {
		opts.Sanitizer = sanitizer.New()
	}
	if opts.PageLoadTimeout <= 0 {
		opts.PageLoadTimeout = DefaultPageLoadTimeout
	}
	if opts.ImplicitTimeout <= 0 {
		opts.ImplicitTimeout = DefaultImplicitTimeout
	}

	return &Component{
		driver: driver,
		opts:   opts,
		waits:  wait.New(driver, opts.Logger, wait.WithInterval(opts.PollInterval)),
		log:    opts.Logger.Named("page"),
	}
}

func (c *Component) Driver() browser.Driver {
	return c.driver
}

func (c *Component) Waits() *wait.Poller {
	return c.waits
}

func (c *Component) Options() Options {
	return c.opts
}

func (c *Component) URL(path string) string {
	return c.opts.BaseURL + c.opts.ContextPath + path
}

// title читает заголовок для сообщений об ошибках; сбой чтения не мешает отчету.
func (c *Component) title(ctx context.Context) string {
	title, err := c.driver.Title(ctx)
	if err != nil {
		return ""
	}
	return title
}

func (c *Component) fail(ctx context.Context, action, raw string, err error) error {
	failure := &ActionError{Action: action, Locator: raw, Title: c.title(ctx), Err: err}
	c.log.Error("Действие не выполнено",
		zap.String("action", action),
		zap.String("locator", raw),
		zap.String("title", failure.Title),
		zap.Error(err),
	)
	return failure
}

// on разбирает локатор и выполняет над ним действие, оборачивая ошибки контекстом.
func (c *Component) on(ctx context.Context, action, raw string, fn func(locator.Locator) error) error {
	loc, err := locator.Parse(raw)
	if err != nil {
		return c.fail(ctx, action, raw, err)
	}
	if err := fn(loc); err != nil {
		return c.fail(ctx, action, raw, err)
	}
	return nil
}

func (c *Component) Open(ctx context.Context, path string) error {
	url := c.URL(path)
	c.log.Info("Открытие страницы", zap.String("url", url))
	if err := c.driver.Open(ctx, url); err != nil {
		return c.fail(ctx, "открытие", url, err)
	}
	return nil
}

// OpenWindow открывает путь в новом окне и переключается на него.
func (c *Component) OpenWindow(ctx context.Context, path string) error {
	url := c.URL(path)
	c.log.Info("Открытие окна", zap.String("url", url))
	if err := c.driver.OpenWindow(ctx, url); err != nil {
		return c.fail(ctx, "открытие окна", url, err)
	}
	return nil
}

func (c *Component) Click(ctx context.Context, raw string) error {
	c.log.Debug("Клик", zap.String("locator", raw))
	return c.on(ctx, "клик", raw, func(loc locator.Locator) error {
		return c.driver.Click(ctx, loc)
	})
}

func (c *Component) ScrollTo(ctx context.Context, raw string) error {
	return c.on(ctx, "прокрутка", raw, func(loc locator.Locator) error {
		return c.driver.ScrollTo(ctx, loc)
	})
}

// Type вводит текст в поле; пустое значение означает "не трогать поле".
func (c *Component) Type(ctx context.Context, raw, text string) error {
	if text == "" {
		return nil
	}

	c.log.Debug("Ввод текста",
		zap.String("locator", raw),
		zap.String("value", c.opts.Sanitizer.SanitizeTyped(raw, text)),
	)
	return c.on(ctx, "ввод текста", raw, func(loc locator.Locator) error {
		return c.driver.Type(ctx, loc, text)
	})
}

func (c *Component) TypeDate(ctx context.Context, raw string, date time.Time) error {
	return c.Type(ctx, raw, c.opts.Formatter.FormatDate(date))
}

func (c *Component) TypeNumber(ctx context.Context, raw string, number float64) error {
	return c.Type(ctx, raw, c.opts.Formatter.FormatNumber(number))
}

func (c *Component) Clear(ctx context.Context, raw string) error {
	return c.on(ctx, "очистка", raw, func(loc locator.Locator) error {
		return c.driver.Clear(ctx, loc)
	})
}

// Select выбирает опцию списка; пустая опция пропускается, как и в Type.
func (c *Component) Select(ctx context.Context, raw, option string) error {
	if option == "" {
		return nil
	}

	opt, err := locator.ParseOption(option)
	if err != nil {
		return c.fail(ctx, "выбор опции", raw, err)
	}

	c.log.Debug("Выбор опции", zap.String("locator", raw), zap.Stringer("option", opt))
	return c.on(ctx, "выбор опции", raw, func(loc locator.Locator) error {
		return c.driver.Select(ctx, loc, opt)
	})
}

func (c *Component) IsPresent(ctx context.Context, raw string) (bool, error) {
	var present bool
	err := c.on(ctx, "проверка присутствия", raw, func(loc locator.Locator) (err error) {
		present, err = c.driver.IsPresent(ctx, loc)
		return err
	})
	return present, err
}

func (c *Component) IsEnabled(ctx context.Context, raw string) (bool, error) {
	var enabled bool
	err := c.on(ctx, "проверка доступности", raw, func(loc locator.Locator) (err error) {
		enabled, err = c.driver.IsEnabled(ctx, loc)
		return err
	})
	return enabled, err
}

func (c *Component) Count(ctx context.Context, raw string) (int, error) {
	var n int
	err := c.on(ctx, "подсчет", raw, func(loc locator.Locator) (err error) {
		n, err = c.driver.Count(ctx, loc)
		return err
	})
	return n, err
}

func (c *Component) Text(ctx context.Context, raw string) (string, error) {
	var text string
	err := c.on(ctx, "чтение текста", raw, func(loc locator.Locator) (err error) {
		text, err = c.driver.Text(ctx, loc)
		return err
	})
	return text, err
}

func (c *Component) Value(ctx context.Context, raw string) (string, error) {
	var value string
	err := c.on(ctx, "чтение значения", raw, func(loc locator.Locator) (err error) {
		value, err = c.driver.Value(ctx, loc)
		return err
	})
	return value, err
}

func (c *Component) Attribute(ctx context.Context, raw, name string) (string, bool, error) {
	var (
		value   string
		present bool
	)
	err := c.on(ctx, "чтение атрибута", raw, func(loc locator.Locator) (err error) {
		value, present, err = c.driver.Attribute(ctx, loc, name)
		return err
	})
	return value, present, err
}

// WaitForPresence ждет элемент; при timeout <= 0 используется ImplicitTimeout.
func (c *Component) WaitForPresence(ctx context.Context, raw string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = c.opts.ImplicitTimeout
	}
	return c.on(ctx, "ожидание", raw, func(loc locator.Locator) error {
		return c.waits.WaitForPresence(ctx, loc, timeout)
	})
}

func (c *Component) Sleep(ctx context.Context, d time.Duration) {
	c.waits.Sleep(ctx, d)
}

// Table возвращает новый объект таблицы; после каждого перелистывания он ждет загрузки страницы.
func (c *Component) Table(cfg table.Config) *table.Table {
	return table.New(c.driver, cfg, c.opts.Logger, table.WithSettler(func(ctx context.Context) error {
		return c.waits.WaitForPageLoad(ctx, c.opts.PageLoadTimeout)
	}))
}
