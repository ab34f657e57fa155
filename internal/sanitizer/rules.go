package sanitizer

import "regexp"

// patternRule заменяет все совпадения своих шаблонов на replacement.
type patternRule struct {
	patterns    []*regexp.Regexp
	replacement string
}

func (r patternRule) Sanitize(text string) string {
	for _, pattern := range r.patterns {
		text = pattern.ReplaceAllString(text, r.replacement)
	}
	return text
}

var (
	passwordRule = patternRule{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(password|passwd|pwd|пароль)\s*[:=]\s*["']?[^"'\s]{3,}["']?`),
		},
		replacement: `${1}: [FILTERED]`,
	}

	tokenRule = patternRule{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(token|токен|api[_-]?key|api[_-]?secret|secret[_-]?key|access[_-]?token)\s*[:=]\s*["']?[a-zA-Z0-9_-]{20,}["']?`),
			regexp.MustCompile(`(?i)(bearer)\s+[a-zA-Z0-9_.-]{20,}`),
		},
		replacement: `${1}: [FILTERED]`,
	}

	sessionRule = patternRule{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(set-cookie|cookie|куки)\s*[:=]\s*["']?[^"'\n]{10,}["']?`),
			regexp.MustCompile(`(?i)(session[_-]?id|jsessionid)\s*[:=]\s*["']?[a-zA-Z0-9_-]{10,}["']?`),
		},
		replacement: `${1}: [FILTERED]`,
	}

	cardRule = patternRule{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`),
			regexp.MustCompile(`(?i)\b(cvv2?|cvc2?)\s*[:=]\s*["']?\d{3,4}["']?`),
		},
		replacement: `[FILTERED_CARD]`,
	}

	emailRule = patternRule{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`),
		},
		replacement: `[FILTERED_EMAIL]`,
	}

	phoneRule = patternRule{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\+\d{1,3}\s?\(?\d{3}\)?\s?\d{3}[-.\s]?\d{2}[-.\s]?\d{2}\b`),
			regexp.MustCompile(`(?i)(phone|телефон|тел\.?)\s*[:=]\s*["']?[+\d\s\-()]{7,}["']?`),
		},
		replacement: `[FILTERED_PHONE]`,
	}

	randomSecret = regexp.MustCompile(`^[a-zA-Z0-9_-]{21,}$`)
)
