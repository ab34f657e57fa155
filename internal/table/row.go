package table

import (
	"strings"
)

// Row: тексты ячеек одной строки на момент чтения. Номера ячеек начинаются с 1.
type Row []string

// Cell возвращает текст ячейки n или пустую строку, если такой ячейки нет.
func (r Row) Cell(n int) string {
	if n < 1 || n > len(r) {
		return ""
	}
	return r[n-1]
}

func (r Row) Len() int {
	return len(r)
}

// Text склеивает ячейки через пробел, как их видит поиск строки.
func (r Row) Text() string {
	return strings.Join(r, " ")
}

func (r Row) String() string {
	return "[" + strings.Join(r, ", ") + "]"
}

// Entity: бизнес-объект, который можно найти в таблице по набору подстрок.
type Entity interface {
	SearchKeys() []string
}

// Keys: готовая реализация Entity поверх набора строк.
type Keys []string

func (k Keys) SearchKeys() []string {
	return k
}
