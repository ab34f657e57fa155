package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// ReadinessState возвращает document.readyState текущего окна.
func (b *PlaywrightBrowser) ReadinessState(ctx context.Context) (string, error) {
	state, err := b.Evaluate(ctx, "() => document.readyState")
	if err != nil {
		return "", fmt.Errorf("ошибка чтения readyState: %w", err)
	}
	return fmt.Sprint(state), nil
}

func (b *PlaywrightBrowser) Sleep(ctx context.Context, d time.Duration) {
	Sleep(ctx, d, b.log)
}

// Sleep блокирует на d; отмена контекста прерывает ожидание и только логируется.
func Sleep(ctx context.Context, d time.Duration, log *zap.Logger) {
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		if log != nil {
			log.Warn("Ожидание прервано", zap.Duration("duration", d), zap.Error(ctx.Err()))
		}
	}
}

// settle ждет затихания сети после действия, меняющего страницу.
func (b *PlaywrightBrowser) settle() {
	page := b.getPage()
	if page == nil {
		return
	}

	err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(float64(b.cfg.ActionTimeout.Milliseconds())),
	})
	if err != nil {
		b.log.Debug("Сеть не затихла после действия", zap.Error(err))
	}
}
