package ui

import (
	"fmt"
	"io"
	"strings"
)

// FormatStatus возвращает иконку, цвет и текст для статуса прогона
func FormatStatus(status string) (icon, color, text string) {
	switch status {
	case "passed":
		return IconCheckmark, ColorGreen, "пройден"
	case "failed":
		return IconCross, ColorRed, "упал"
	case "skipped":
		return IconSkip, ColorGray, "пропущен"
	default:
		return IconClock, ColorYellow, status
	}
}

// Ok печатает зеленую строку успеха
func Ok(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ColorGreen+IconCheckmark+" "+format+ColorReset+"\n", args...)
}

// Fail печатает ошибку
func Fail(w io.Writer, prefix string, err error) {
	fmt.Fprintf(w, ColorRed+IconCross+" %s:"+ColorReset+" %v\n", prefix, err)
}

// Warn печатает предупреждение без ошибки
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ColorYellow+format+ColorReset+"\n", args...)
}

// Field печатает пару "метка: значение"
func Field(w io.Writer, label string, value any) {
	fmt.Fprintf(w, ColorCyan+"%s:"+ColorReset+" %v\n", label, value)
}

// Cells печатает строку таблицы с номером
func Cells(w io.Writer, n int, cells []string) {
	fmt.Fprintf(w, "  "+ColorBold+"%3d"+ColorReset+" "+ColorGray+"│"+ColorReset+" %s\n", n, strings.Join(cells, ColorGray+" │ "+ColorReset))
}

// ClearScreen очищает терминал
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}
