package browser

import (
	"fmt"
	"regexp"
	"strings"

	"pageObject/internal/locator"
)

var (
	containsDoubleQuoted = regexp.MustCompile(`:contains\("([^"]*)"\)`)
	containsSingleQuoted = regexp.MustCompile(`:contains\('([^']*)'\)`)
	containsBare         = regexp.MustCompile(`:contains\(([^)'"]+)\)`)
)

// BuildSelector переводит локатор в селектор движка Playwright.
// id и name строятся через CSS-атрибуты, чтобы идентификаторы со спецсимволами не ломали селектор.
func BuildSelector(loc locator.Locator) (string, error) {
	if err := ValidateSelector(loc.Identifier); err != nil {
		return "", &ElementError{Op: "селектор", Locator: loc, Err: err}
	}

	switch loc.Kind {
	case locator.KindID:
		return fmt.Sprintf("css=[id=%s]", cssString(loc.Identifier)), nil
	case locator.KindName:
		return fmt.Sprintf("css=[name=%s]", cssString(loc.Identifier)), nil
	case locator.KindCSS:
		normalized, _ := NormalizeSelector(loc.Identifier)
		return "css=" + normalized, nil
	case locator.KindXPath:
		return "xpath=" + loc.Identifier, nil
	case locator.KindLinkText:
		return fmt.Sprintf("xpath=//a[normalize-space(.)=%s]", XPathLiteral(strings.TrimSpace(loc.Identifier))), nil
	default:
		return "", &ElementError{Op: "селектор", Locator: loc, Err: locator.ErrUnrecognizedPrefix}
	}
}

func cssString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// XPathLiteral экранирует строку для XPath 1.0, где нет escape-последовательностей:
// строка с обоими видами кавычек собирается через concat().
func XPathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}

	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if part != "" {
			quoted = append(quoted, "'"+part+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

// NormalizeSelector заменяет jQuery-псевдокласс :contains() на :has-text() Playwright.
// Возвращает нормализованный селектор и флаг, был ли он изменён.
func NormalizeSelector(selector string) (string, bool) {
	if selector == "" {
		return selector, false
	}

	changed := false

	normalized := containsDoubleQuoted.ReplaceAllStringFunc(selector, func(match string) string {
		changed = true
		text := containsDoubleQuoted.FindStringSubmatch(match)[1]
		text = strings.ReplaceAll(text, `\`, `\\`)
		return `:has-text("` + text + `")`
	})

	normalized = containsSingleQuoted.ReplaceAllStringFunc(normalized, func(match string) string {
		changed = true
		text := containsSingleQuoted.FindStringSubmatch(match)[1]
		text = strings.ReplaceAll(text, `\`, `\\`)
		return `:has-text('` + text + `')`
	})

	normalized = containsBare.ReplaceAllStringFunc(normalized, func(match string) string {
		changed = true
		text := strings.TrimSpace(containsBare.FindStringSubmatch(match)[1])
		return `:has-text("` + text + `")`
	})

	return normalized, changed
}

// ValidateSelector отсекает очевидные ошибки: URL вместо локатора.
func ValidateSelector(selector string) error {
	trimmed := strings.TrimSpace(selector)
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return fmt.Errorf("локатор не может быть URL, для перехода используйте Open: %s", selector)
	}
	return nil
}
