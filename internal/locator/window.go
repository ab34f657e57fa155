package locator

import "strings"

type WindowKind int

const (
	WindowTitle WindowKind = iota
	WindowName
)

func (k WindowKind) String() string {
	if k == WindowName {
		return "name"
	}
	return "title"
}

// Window идентифицирует открытое окно по подстроке заголовка или имени.
type Window struct {
	Kind       WindowKind
	Identifier string
}

func ByTitle(title string) Window { return Window{Kind: WindowTitle, Identifier: title} }
func ByName(name string) Window   { return Window{Kind: WindowName, Identifier: name} }

// ParseWindow разбирает идентификатор окна, без префикса это title.
func ParseWindow(raw string) (Window, error) {
	prefix, identifier, found := strings.Cut(raw, "=")
	if !found {
		return ByTitle(raw), nil
	}

	switch prefix {
	case "title":
		return ByTitle(identifier), nil
	case "name":
		return ByName(identifier), nil
	default:
		return Window{}, &ParseError{
			Grammar: "идентификатор окна",
			Input:   raw,
			Prefix:  prefix,
			Err:     ErrUnrecognizedPrefix,
		}
	}
}

// Matches проверяет вхождение идентификатора в заголовок или имя окна.
func (w Window) Matches(title, name string) bool {
	if w.Kind == WindowName {
		return strings.Contains(name, w.Identifier)
	}
	return strings.Contains(title, w.Identifier)
}

func (w Window) String() string {
	return w.Kind.String() + "=" + w.Identifier
}
