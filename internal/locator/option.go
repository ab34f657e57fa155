package locator

import (
	"strconv"
	"strings"
)

type OptionKind int

const (
	OptionValue OptionKind = iota
	OptionLabel
	OptionIndex
)

func (k OptionKind) String() string {
	switch k {
	case OptionValue:
		return "value"
	case OptionLabel:
		return "label"
	case OptionIndex:
		return "index"
	default:
		return "unknown"
	}
}

// Option выбирает пункт выпадающего списка по значению, видимому тексту или индексу.
type Option struct {
	Kind       OptionKind
	Identifier string
	Index      int
}

func ByValue(value string) Option { return Option{Kind: OptionValue, Identifier: value} }
func ByLabel(label string) Option { return Option{Kind: OptionLabel, Identifier: label} }

func ByIndex(index int) Option {
	return Option{Kind: OptionIndex, Identifier: strconv.Itoa(index), Index: index}
}

// ParseOption разбирает локатор опции, без префикса это value.
func ParseOption(raw string) (Option, error) {
	prefix, identifier, found := strings.Cut(raw, "=")
	if !found {
		return ByValue(raw), nil
	}

	switch prefix {
	case "value":
		return ByValue(identifier), nil
	case "label":
		return ByLabel(identifier), nil
	case "index":
		// strconv.Atoi принимает знак, поэтому отрицательные проверяем отдельно
		n, err := strconv.Atoi(identifier)
		if err != nil || n < 0 || strings.HasPrefix(identifier, "+") {
			return Option{}, &ParseError{Grammar: "локатор опции", Input: raw, Err: ErrInvalidIndex}
		}
		return ByIndex(n), nil
	default:
		return Option{}, &ParseError{
			Grammar: "локатор опции",
			Input:   raw,
			Prefix:  prefix,
			Err:     ErrUnrecognizedPrefix,
		}
	}
}

func (o Option) String() string {
	return o.Kind.String() + "=" + o.Identifier
}
