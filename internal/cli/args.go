package cli

import (
	"errors"
	"strings"
	"unicode"
)

var ErrUnclosedQuote = errors.New("незакрытая кавычка")

// SplitArgs делит строку по пробелам. Кавычка в начале аргумента
// группирует его до парной кавычки; внутри слова кавычки обычные символы,
// поэтому xpath=//a[@id='x'] не требует экранирования.
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		started bool
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			current.WriteRune(r)
		case (r == '"' || r == '\'') && !started:
			quote = r
			started = true
		case unicode.IsSpace(r):
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}

	if quote != 0 {
		return nil, ErrUnclosedQuote
	}
	if started {
		args = append(args, current.String())
	}
	return args, nil
}
