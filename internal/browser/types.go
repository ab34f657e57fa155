package browser

import (
	"context"
	"sync"
	"time"

	"pageObject/internal/locator"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// ReadyStateComplete сообщает, что страница полностью загружена.
const ReadyStateComplete = "complete"

// Elements: операции над одним элементом страницы.
// Все, кроме Count и IsPresent, возвращают ErrElementNotFound при отсутствии совпадений;
// при нескольких совпадениях используется первое.
type Elements interface {
	Click(ctx context.Context, loc locator.Locator) error
	// ScrollTo прокручивает страницу так, чтобы элемент оказался в видимой области.
	ScrollTo(ctx context.Context, loc locator.Locator) error
	Type(ctx context.Context, loc locator.Locator, text string) error
	Clear(ctx context.Context, loc locator.Locator) error
	Select(ctx context.Context, loc locator.Locator, option locator.Option) error
	IsPresent(ctx context.Context, loc locator.Locator) (bool, error)
	IsEnabled(ctx context.Context, loc locator.Locator) (bool, error)
	Count(ctx context.Context, loc locator.Locator) (int, error)
	Text(ctx context.Context, loc locator.Locator) (string, error)
	Value(ctx context.Context, loc locator.Locator) (string, error)
	// Attribute возвращает false во втором значении, если атрибута нет.
	Attribute(ctx context.Context, loc locator.Locator, name string) (string, bool, error)
}

// Document: операции уровня текущей страницы.
type Document interface {
	Open(ctx context.Context, url string) error
	Title(ctx context.Context) (string, error)
	ReadinessState(ctx context.Context) (string, error)
	Evaluate(ctx context.Context, script string) (any, error)
	// Sleep блокирует вызывающего; прерывание контекстом только логируется.
	Sleep(ctx context.Context, d time.Duration)
	Screenshot(ctx context.Context) ([]byte, error)
	PageSource(ctx context.Context) (string, error)
}

// Windows: управление окнами (вкладками) сессии.
type Windows interface {
	OpenWindow(ctx context.Context, url string) error
	SelectWindow(ctx context.Context, window locator.Window) error
	CloseWindow(ctx context.Context) error
	CloseAllBut(ctx context.Context, window locator.Window) error
	WindowTitles(ctx context.Context) ([]string, error)
	WindowNames(ctx context.Context) ([]string, error)
}

// Driver: единственная граница между ядром и реальной браузерной сессией.
type Driver interface {
	Elements
	Document
	Windows
	Close() error
}

type Engine string

const (
	EngineFirefox  Engine = "firefox"
	EngineChromium Engine = "chromium"
	EngineWebKit   Engine = "webkit"
)

type Config struct {
	Engine       Engine
	Headless     bool
	UserDataDir  string
	BrowsersPath string
	Display      string
	// SettleAfterClick включает ожидание networkidle после клика.
	SettleAfterClick bool
	Timeout          time.Duration
	NavigateTimeout  time.Duration
	ActionTimeout    time.Duration
}

type PlaywrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	cfg     Config
	log     *zap.Logger
	mu      sync.RWMutex
}

var _ Driver = (*PlaywrightBrowser)(nil)
