// Package locator разбирает строковые локаторы элементов, опций и окон.
// Грамматика всех трёх: [<префикс>=]<идентификатор>, префикс отделяется первым '='.
package locator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnrecognizedPrefix = errors.New("неизвестный префикс локатора")
	ErrInvalidIndex       = errors.New("индекс опции должен быть неотрицательным целым")
)

// ParseError описывает строку, которую не удалось разобрать.
type ParseError struct {
	Grammar string
	Input   string
	Prefix  string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Prefix != "" {
		return fmt.Sprintf("%s %q: %v %q", e.Grammar, e.Input, e.Err, e.Prefix)
	}
	return fmt.Sprintf("%s %q: %v", e.Grammar, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Kind int

const (
	KindID Kind = iota
	KindName
	KindCSS
	KindXPath
	KindLinkText
)

var kindPrefixes = map[string]Kind{
	"id":    KindID,
	"name":  KindName,
	"css":   KindCSS,
	"xpath": KindXPath,
	"text":  KindLinkText,
}

func (k Kind) String() string {
	switch k {
	case KindID:
		return "id"
	case KindName:
		return "name"
	case KindCSS:
		return "css"
	case KindXPath:
		return "xpath"
	case KindLinkText:
		return "text"
	default:
		return "unknown"
	}
}

// Locator адресует один элемент страницы: стратегия поиска плюс идентификатор.
// KindLinkText означает точный видимый текст ссылки, а не поиск подстроки.
type Locator struct {
	Kind       Kind
	Identifier string
}

func ID(id string) Locator         { return Locator{Kind: KindID, Identifier: id} }
func Name(name string) Locator     { return Locator{Kind: KindName, Identifier: name} }
func CSS(selector string) Locator  { return Locator{Kind: KindCSS, Identifier: selector} }
func XPath(expr string) Locator    { return Locator{Kind: KindXPath, Identifier: expr} }
func LinkText(text string) Locator { return Locator{Kind: KindLinkText, Identifier: text} }

// Parse разбирает локатор элемента. Строка без '=' считается id.
// Префикс вне набора id|name|css|xpath|text возвращает ошибку, а не id по умолчанию.
func Parse(raw string) (Locator, error) {
	prefix, identifier, found := strings.Cut(raw, "=")
	if !found {
		return ID(raw), nil
	}

	kind, ok := kindPrefixes[prefix]
	if !ok {
		return Locator{}, &ParseError{
			Grammar: "локатор элемента",
			Input:   raw,
			Prefix:  prefix,
			Err:     ErrUnrecognizedPrefix,
		}
	}

	return Locator{Kind: kind, Identifier: identifier}, nil
}

// MustParse для статических локаторов в описаниях страниц.
func MustParse(raw string) Locator {
	loc, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return loc
}

// String возвращает каноническую форму prefix=identifier.
func (l Locator) String() string {
	return l.Kind.String() + "=" + l.Identifier
}

// Append дописывает фрагмент пути к XPath-локатору, например "[3]" или "/td".
func (l Locator) Append(fragment string) Locator {
	return Locator{Kind: l.Kind, Identifier: l.Identifier + fragment}
}

// Nth добавляет к XPath-локатору 1-based позицию.
func (l Locator) Nth(position int) Locator {
	return l.Append(fmt.Sprintf("[%d]", position))
}
