package wait

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pageObject/internal/browser"
	"pageObject/internal/locator"

	"go.uber.org/zap"
)

// DefaultInterval: шаг опроса, общий для всех ожиданий.
const DefaultInterval = 100 * time.Millisecond

var ErrTimeout = errors.New("истек таймаут ожидания")

// Prober: минимальная часть драйвера, на которой строятся ожидания.
type Prober interface {
	IsPresent(ctx context.Context, loc locator.Locator) (bool, error)
	ReadinessState(ctx context.Context) (string, error)
	Evaluate(ctx context.Context, script string) (any, error)
	Sleep(ctx context.Context, d time.Duration)
}

type Poller struct {
	probe    Prober
	log      *zap.Logger
	interval time.Duration
}

type Option func(*Poller)

func WithInterval(interval time.Duration) Option {
	return func(p *Poller) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

func New(probe Prober, log *zap.Logger, opts ...Option) *Poller {
	if log == nil {
		log = zap.NewNop()
	}

	p := &Poller{
		probe:    probe,
		log:      log.Named("wait"),
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Poller) Interval() time.Duration {
	return p.interval
}

// WaitForPresence ждет появления элемента. Ошибки пробы возвращаются сразу;
// по истечении таймаута возвращается ошибка класса ErrElementNotFound.
func (p *Poller) WaitForPresence(ctx context.Context, loc locator.Locator, timeout time.Duration) error {
	var elapsed time.Duration
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		present, err := p.probe.IsPresent(ctx, loc)
		if err != nil {
			return err
		}
		if present {
			return nil
		}

		if elapsed >= timeout {
			return &browser.ElementError{
				Op:      "ожидание присутствия",
				Locator: loc,
				Err:     fmt.Errorf("%w: %w (%v)", ErrTimeout, browser.ErrElementNotFound, timeout),
			}
		}

		p.probe.Sleep(ctx, p.interval)
		elapsed += p.interval
	}
}

// WaitForPageLoad ждет document.readyState == "complete".
// Таймаут мягкий: по его истечении пишется предупреждение и ожидание завершается без ошибки.
func (p *Poller) WaitForPageLoad(ctx context.Context, timeout time.Duration) error {
	var elapsed time.Duration
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		loaded, err := p.IsPageLoaded(ctx)
		if err != nil {
			return err
		}
		if loaded {
			return nil
		}

		p.probe.Sleep(ctx, p.interval)
		elapsed += p.interval

		if elapsed >= timeout {
			p.log.Warn("Страница не загрузилась за отведенное время, продолжаем",
				zap.Duration("timeout", timeout),
			)
			return nil
		}
	}
}

func (p *Poller) IsPageLoaded(ctx context.Context) (bool, error) {
	state, err := p.probe.ReadinessState(ctx)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(state, browser.ReadyStateComplete), nil
}

// WaitUntil повторяет скрипт, пока он не вернет true.
// При timeout <= 0 ожидание не ограничено: скрипт обязан когда-нибудь стать истинным.
func (p *Poller) WaitUntil(ctx context.Context, script string, timeout time.Duration) error {
	var elapsed time.Duration
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := p.probe.Evaluate(ctx, script)
		if err != nil {
			return fmt.Errorf("ошибка выполнения условия ожидания: %w", err)
		}
		if strings.EqualFold(fmt.Sprint(result), "true") {
			return nil
		}

		if timeout > 0 && elapsed >= timeout {
			return fmt.Errorf("%w: условие %q не выполнено за %v", ErrTimeout, script, timeout)
		}

		p.probe.Sleep(ctx, p.interval)
		elapsed += p.interval
	}
}

func (p *Poller) Sleep(ctx context.Context, d time.Duration) {
	p.probe.Sleep(ctx, d)
}
