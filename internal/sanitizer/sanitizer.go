package sanitizer

import (
	"strings"
)

const Filtered = "[FILTERED]"

type Rule interface {
	Sanitize(text string) string
}

// DataSanitizer маскирует чувствительные данные перед записью в лог:
// значения, вводимые в поля, и тексты страниц.
type DataSanitizer struct {
	rules    []Rule
	keywords []string
}

func New(extra ...Rule) *DataSanitizer {
	rules := []Rule{
		passwordRule,
		tokenRule,
		sessionRule,
		cardRule,
		emailRule,
		phoneRule,
	}

	return &DataSanitizer{
		rules: append(rules, extra...),
		keywords: []string{
			"password", "passwd", "пароль", "token", "secret", "api-key", "api_key",
			"card", "cvv", "cvc",
		},
	}
}

func (s *DataSanitizer) Sanitize(text string) string {
	if text == "" {
		return text
	}

	result := text
	for _, rule := range s.rules {
		result = rule.Sanitize(result)
	}
	return result
}

// IsSensitiveLocator сообщает, что локатор указывает на поле с секретом (пароль, токен, карта).
func (s *DataSanitizer) IsSensitiveLocator(loc string) bool {
	lower := strings.ToLower(loc)
	for _, keyword := range s.keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// SanitizeTyped готовит к логированию значение, вводимое в поле loc.
// Значение секретного поля скрывается целиком, остальные проходят через правила.
func (s *DataSanitizer) SanitizeTyped(loc, value string) string {
	if value == "" {
		return value
	}

	if s.IsSensitiveLocator(loc) || randomSecret.MatchString(value) {
		return Filtered
	}

	return s.Sanitize(value)
}
