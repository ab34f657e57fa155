package browser

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

func New(cfg Config, log *zap.Logger) *PlaywrightBrowser {
	// Установка дефолтных таймаутов
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.NavigateTimeout == 0 {
		cfg.NavigateTimeout = 60 * time.Second // Navigate обычно дольше
	}
	if cfg.ActionTimeout == 0 {
		cfg.ActionTimeout = 10 * time.Second // Click/Type обычно быстрые
	}
	if cfg.Engine == "" {
		cfg.Engine = EngineFirefox
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &PlaywrightBrowser{
		cfg: cfg,
		log: log.Named("browser"),
	}
}

// getPage безопасно возвращает текущую страницу с read lock
func (b *PlaywrightBrowser) getPage() playwright.Page {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.page
}

// setPage безопасно устанавливает страницу с write lock
func (b *PlaywrightBrowser) setPage(page playwright.Page) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.page = page
	if page != nil {
		page.SetDefaultTimeout(float64(b.cfg.Timeout.Milliseconds()))
	}
}

func (b *PlaywrightBrowser) getContext() playwright.BrowserContext {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.context
}

func (b *PlaywrightBrowser) currentPage() (playwright.Page, error) {
	page := b.getPage()
	if page == nil {
		return nil, ErrNotLaunched
	}
	return page, nil
}

func (b *PlaywrightBrowser) getBrowserArgs() []string {
	if b.cfg.Engine == EngineChromium {
		return []string{
			"--no-sandbox",
		}
	}
	return nil
}

func (b *PlaywrightBrowser) getEnvMap() map[string]string {
	if b.cfg.Display != "" {
		return map[string]string{
			"DISPLAY": b.cfg.Display,
		}
	}
	return nil
}

func (b *PlaywrightBrowser) browserType(pw *playwright.Playwright) (playwright.BrowserType, error) {
	switch b.cfg.Engine {
	case EngineFirefox:
		return pw.Firefox, nil
	case EngineChromium:
		return pw.Chromium, nil
	case EngineWebKit:
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("неизвестный движок браузера: %s", b.cfg.Engine)
	}
}

func (b *PlaywrightBrowser) launchPersistent(bt playwright.BrowserType) error {
	opts := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(b.cfg.Headless),
		Args:     b.getBrowserArgs(),
	}

	if env := b.getEnvMap(); env != nil {
		opts.Env = env
	}

	browserContext, err := bt.LaunchPersistentContext(b.cfg.UserDataDir, opts)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.context = browserContext
	b.mu.Unlock()

	pages := browserContext.Pages()
	var page playwright.Page
	if len(pages) == 0 {
		page, err = browserContext.NewPage()
		if err != nil {
			return err
		}
	} else {
		page = pages[0]
	}

	b.setPage(page)
	return nil
}

func (b *PlaywrightBrowser) launchStandard(bt playwright.BrowserType) error {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.cfg.Headless),
		Args:     b.getBrowserArgs(),
	}

	if env := b.getEnvMap(); env != nil {
		opts.Env = env
	}

	browser, err := bt.Launch(opts)
	if err != nil {
		return err
	}

	// Отдельный контекст нужен, чтобы перечислять окна сессии
	browserContext, err := browser.NewContext()
	if err != nil {
		browser.Close()
		return err
	}

	b.mu.Lock()
	b.browser = browser
	b.context = browserContext
	b.mu.Unlock()

	page, err := browserContext.NewPage()
	if err != nil {
		return err
	}

	b.setPage(page)
	return nil
}

func (b *PlaywrightBrowser) Launch(ctx context.Context) error {
	if b.cfg.BrowsersPath != "" {
		os.Setenv("PLAYWRIGHT_BROWSERS_PATH", b.cfg.BrowsersPath)
	}

	pw, err := playwright.Run()
	if err != nil {
		return err
	}
	b.pw = pw

	bt, err := b.browserType(pw)
	if err != nil {
		return err
	}

	b.log.Info("Запуск браузера",
		zap.String("engine", string(b.cfg.Engine)),
		zap.Bool("headless", b.cfg.Headless),
		zap.Bool("persistent", b.cfg.UserDataDir != ""),
	)

	if b.cfg.UserDataDir != "" {
		return b.launchPersistent(bt)
	}

	return b.launchStandard(bt)
}

func (b *PlaywrightBrowser) Open(ctx context.Context, url string) error {
	page, err := b.currentPage()
	if err != nil {
		return err
	}

	// Создаем context с timeout для navigate операции
	navCtx, cancel := context.WithTimeout(ctx, b.cfg.NavigateTimeout)
	defer cancel()

	// Channel для получения результата
	errChan := make(chan error, 1)
	go func() {
		_, err := page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateLoad,
			Timeout:   playwright.Float(float64(b.cfg.NavigateTimeout.Milliseconds())),
		})
		errChan <- err
	}()

	// Ждем результат или timeout
	select {
	case <-navCtx.Done():
		return fmt.Errorf("navigate timeout after %v: %s", b.cfg.NavigateTimeout, url)
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("ошибка перехода на %s: %w", url, err)
		}
	}

	b.log.Debug("Открыта страница", zap.String("url", url))
	return nil
}

func (b *PlaywrightBrowser) Title(ctx context.Context) (string, error) {
	page, err := b.currentPage()
	if err != nil {
		return "", err
	}
	return page.Title()
}

func (b *PlaywrightBrowser) PageSource(ctx context.Context) (string, error) {
	page, err := b.currentPage()
	if err != nil {
		return "", err
	}
	return page.Content()
}

func (b *PlaywrightBrowser) Screenshot(ctx context.Context) ([]byte, error) {
	page, err := b.currentPage()
	if err != nil {
		return nil, err
	}
	return page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
}

// Evaluate выполняет JS-выражение в текущем окне.
func (b *PlaywrightBrowser) Evaluate(ctx context.Context, script string) (any, error) {
	page, err := b.currentPage()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return page.Evaluate(script)
}

func (b *PlaywrightBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.context != nil {
		if err := b.context.Close(); err != nil {
			return err
		}
	}
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			return err
		}
	}
	b.page = nil
	if b.pw != nil {
		return b.pw.Stop()
	}
	return nil
}
