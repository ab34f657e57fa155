package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultDateLayout       = "02.01.2006"
	DefaultDecimalSeparator = ","
	DefaultDecimals         = 2
)

var ErrInvalidDate = errors.New("некорректная дата")

// Formatter переводит даты и числа в строки, которые ожидают поля ввода приложения.
type Formatter interface {
	FormatDate(t time.Time) string
	ParseDate(s string) (time.Time, error)
	FormatNumber(v float64) string
}

// Default форматирует даты как dd.MM.yyyy, числа: с двумя знаками после запятой, без разделителя разрядов.
type Default struct {
	DateLayout       string
	DecimalSeparator string
	Decimals         int
}

var _ Formatter = Default{}

func NewDefault() Default {
	return Default{
		DateLayout:       DefaultDateLayout,
		DecimalSeparator: DefaultDecimalSeparator,
		Decimals:         DefaultDecimals,
	}
}

func (f Default) layout() string {
	if f.DateLayout == "" {
		return DefaultDateLayout
	}
	return f.DateLayout
}

// FormatDate возвращает пустую строку для нулевого времени.
func (f Default) FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(f.layout())
}

func (f Default) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(f.layout(), strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidDate, s, err)
	}
	return t, nil
}

func (f Default) FormatNumber(v float64) string {
	sep := f.DecimalSeparator
	if sep == "" {
		sep = DefaultDecimalSeparator
	}

	s := strconv.FormatFloat(v, 'f', f.Decimals, 64)
	return strings.Replace(s, ".", sep, 1)
}
