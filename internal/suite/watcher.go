// Package suite подключает к обычным go-тестам журнал прогонов
// и снимок экрана при падении.
package suite

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"pageObject/internal/database"
)

// T: часть testing.TB, которой пользуется Watcher.
type T interface {
	Name() string
	Failed() bool
	Skipped() bool
	Cleanup(func())
	Helper()
}

// Camera: источник снимка и заголовка текущей страницы.
type Camera interface {
	Title(ctx context.Context) (string, error)
	Screenshot(ctx context.Context) ([]byte, error)
}

// Recorder сохраняет итог прогона. Обычно это *database.RunRepository.
type Recorder interface {
	Create(ctx context.Context, run *database.Run) error
}

type Option func(*Watcher)

func WithRecorder(r Recorder) Option {
	return func(w *Watcher) {
		w.recorder = r
	}
}

func WithClock(now func() time.Time) Option {
	return func(w *Watcher) {
		w.now = now
	}
}

type Watcher struct {
	camera   Camera
	dir      string
	log      *zap.Logger
	recorder Recorder
	now      func() time.Time
}

func New(camera Camera, dir string, log *zap.Logger, opts ...Option) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Watcher{
		camera: camera,
		dir:    dir,
		log:    log.Named("suite"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch пишет в лог начало теста и регистрирует завершение через t.Cleanup.
// Cleanup выполняется после всех, зарегистрированных позже, поэтому
// снимок делается уже после пользовательского teardown.
func (w *Watcher) Watch(t T) {
	t.Helper()
	name := t.Name()
	started := w.now()
	w.log.Info("Тест запущен", zap.String("test", name))

	t.Cleanup(func() {
		w.finish(t, name, started)
	})
}

func (w *Watcher) finish(t T, name string, started time.Time) {
	ctx := context.Background()
	finished := w.now()
	run := &database.Run{
		Name:       name,
		Status:     database.StatusPassed,
		StartedAt:  started,
		FinishedAt: finished,
		Duration:   finished.Sub(started),
	}

	switch {
	case t.Failed():
		run.Status = database.StatusFailed
		w.log.Info("Тест упал", zap.String("test", name))
		if title, err := w.camera.Title(ctx); err == nil {
			run.PageTitle = title
		}
		if path, err := w.capture(ctx, name); err != nil {
			w.log.Error("Не удалось сделать снимок экрана", zap.String("test", name), zap.Error(err))
			run.Error = err.Error()
		} else {
			run.ScreenshotPath = path
			w.log.Info("Снимок экрана сохранен", zap.String("path", path))
		}
	case t.Skipped():
		run.Status = database.StatusSkipped
	}

	w.log.Info("Тест завершен",
		zap.String("test", name),
		zap.String("status", run.Status),
		zap.Duration("duration", run.Duration),
	)

	if w.recorder == nil {
		return
	}
	if err := w.recorder.Create(ctx, run); err != nil {
		w.log.Warn("Не удалось записать прогон в журнал", zap.String("test", name), zap.Error(err))
	}
}

func (w *Watcher) capture(ctx context.Context, name string) (string, error) {
	data, err := w.camera.Screenshot(ctx)
	if err != nil {
		return "", err
	}
	path := ScreenshotPath(w.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ScreenshotPath: <dir>/<test>.png; подтесты "A/b" превращаются в "A.b".
func ScreenshotPath(dir, test string) string {
	return filepath.Join(dir, strings.ReplaceAll(test, "/", ".")+".png")
}
