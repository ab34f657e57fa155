// Package static реализует драйвер поверх HTML-документов в памяти.
// Документы регистрируются по URL, ссылки переходят между ними, поля форм
// меняются на месте: объекты страниц можно проверять на сохраненных
// страницах без браузера.
package static

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"pageObject/internal/browser"

	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

var (
	ErrUnknownDocument = errors.New("документ не зарегистрирован")
	ErrUnsupported     = errors.New("операция не поддерживается статическим драйвером")
)

// ScriptFunc отвечает на Evaluate для зарегистрированного скрипта.
type ScriptFunc func() (any, error)

type window struct {
	name string
	url  string
	root *html.Node
}

type Driver struct {
	mu        sync.Mutex
	log       *zap.Logger
	docs      map[string]string
	scripts   map[string]ScriptFunc
	readiness string
	windows   []*window
	current   int
	sleep     func(ctx context.Context, d time.Duration)
	slept     time.Duration
}

var _ browser.Driver = (*Driver)(nil)

type Option func(*Driver)

// WithDocument регистрирует документ при создании драйвера.
func WithDocument(url, doc string) Option {
	return func(d *Driver) {
		d.docs[url] = doc
	}
}

// WithInstantSleep заменяет реальный сон учетом длительности, см. Slept.
func WithInstantSleep() Option {
	return func(d *Driver) {
		d.sleep = func(ctx context.Context, dur time.Duration) {
			d.mu.Lock()
			d.slept += dur
			d.mu.Unlock()
		}
	}
}

func New(log *zap.Logger, opts ...Option) *Driver {
	if log == nil {
		log = zap.NewNop()
	}

	d := &Driver{
		log:       log.Named("static"),
		docs:      make(map[string]string),
		scripts:   make(map[string]ScriptFunc),
		readiness: browser.ReadyStateComplete,
		current:   -1,
	}
	d.sleep = func(ctx context.Context, dur time.Duration) {
		browser.Sleep(ctx, dur, d.log)
	}

	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) Register(url, doc string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.docs[url] = doc
}

// HandleScript задает результат Evaluate для точного текста скрипта.
func (d *Driver) HandleScript(script string, fn ScriptFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scripts[script] = fn
}

func (d *Driver) SetReadiness(state string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.readiness = state
}

// SetWindowName задает window.name текущего окна.
func (d *Driver) SetWindowName(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.currentWindow()
	if err != nil {
		return err
	}
	w.name = name
	return nil
}

// CurrentURL возвращает адрес документа в текущем окне.
func (d *Driver) CurrentURL() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.currentWindow()
	if err != nil {
		return ""
	}
	return w.url
}

func (d *Driver) Slept() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.slept
}

func (d *Driver) currentWindow() (*window, error) {
	if d.current < 0 || d.current >= len(d.windows) {
		return nil, browser.ErrNotLaunched
	}
	return d.windows[d.current], nil
}

func (d *Driver) load(rawURL string) (*html.Node, error) {
	doc, ok := d.docs[rawURL]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, rawURL)
	}

	root, err := htmlquery.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора документа %s: %w", rawURL, err)
	}
	return root, nil
}

// navigate загружает документ в окно w.
func (d *Driver) navigate(w *window, rawURL string) error {
	root, err := d.load(rawURL)
	if err != nil {
		return err
	}

	w.url = rawURL
	w.root = root
	d.log.Debug("Открыт документ", zap.String("url", rawURL))
	return nil
}

// resolveHref переводит href ссылки в адрес зарегистрированного документа.
func (d *Driver) resolveHref(base, href string) (string, bool) {
	if _, ok := d.docs[href]; ok {
		return href, true
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	resolved := baseURL.ResolveReference(ref).String()
	_, ok := d.docs[resolved]
	return resolved, ok
}

func (d *Driver) Open(ctx context.Context, rawURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.currentWindow()
	if err != nil {
		w = &window{}
		if err := d.navigate(w, rawURL); err != nil {
			return err
		}
		d.windows = append(d.windows, w)
		d.current = len(d.windows) - 1
		return nil
	}

	return d.navigate(w, rawURL)
}

func (d *Driver) Title(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.currentWindow()
	if err != nil {
		return "", err
	}
	return title(w.root), nil
}

func title(root *html.Node) string {
	if root == nil {
		return ""
	}
	node := htmlquery.FindOne(root, "//title")
	if node == nil {
		return ""
	}
	return normalizeSpace(htmlquery.InnerText(node))
}

func (d *Driver) ReadinessState(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.currentWindow(); err != nil {
		return "", err
	}
	return d.readiness, nil
}

func (d *Driver) Evaluate(ctx context.Context, script string) (any, error) {
	d.mu.Lock()
	fn, ok := d.scripts[script]
	d.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: evaluate %q", ErrUnsupported, script)
	}
	return fn()
}

func (d *Driver) Sleep(ctx context.Context, dur time.Duration) {
	d.sleep(ctx, dur)
}

func (d *Driver) Screenshot(ctx context.Context) ([]byte, error) {
	return nil, fmt.Errorf("%w: screenshot", ErrUnsupported)
}

func (d *Driver) PageSource(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, err := d.currentWindow()
	if err != nil {
		return "", err
	}
	return htmlquery.OutputHTML(w.root, true), nil
}

func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.windows = nil
	d.current = -1
	return nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
